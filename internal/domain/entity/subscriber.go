package entity

// SubscriptionState состояние подписки чата на уведомления
type SubscriptionState string

const (
	StateSubscribed   SubscriptionState = "subscribed"   // получает уведомления
	StateUnsubscribed SubscriptionState = "unsubscribed" // отписался
)

// Subscriber чат Telegram, получающий уведомления о дефектах
type Subscriber struct {
	ChatID int64             // Telegram Chat ID
	UserID int64             // Telegram User ID
	State  SubscriptionState // Текущее состояние подписки
}

// NewSubscriber создаёт подписчика с активной подпиской
func NewSubscriber(chatID, userID int64) *Subscriber {
	return &Subscriber{
		ChatID: chatID,
		UserID: userID,
		State:  StateSubscribed,
	}
}

// SetState обновляет состояние подписки
func (s *Subscriber) SetState(state SubscriptionState) {
	s.State = state
}

// Active сообщает, нужно ли отправлять уведомления
func (s *Subscriber) Active() bool {
	return s.State == StateSubscribed
}
