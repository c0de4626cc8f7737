package storage

import (
	"context"
	"sort"
	"sync"

	"road-inspector/internal/domain/entity"
	"road-inspector/internal/domain/port"
)

// MemorySubscriberRepository in-memory хранилище подписчиков.
// Живёт до конца процесса, между запусками ничего не сохраняется.
type MemorySubscriberRepository struct {
	mu          sync.RWMutex
	subscribers map[int64]*entity.Subscriber
}

// NewMemorySubscriberRepository создаёт новое in-memory хранилище
func NewMemorySubscriberRepository() *MemorySubscriberRepository {
	return &MemorySubscriberRepository{
		subscribers: make(map[int64]*entity.Subscriber),
	}
}

// Get возвращает копию подписчика по Chat ID, создаёт нового если не найден.
// Изменения копии сохраняются через Save.
func (r *MemorySubscriberRepository) Get(ctx context.Context, chatID, userID int64) (*entity.Subscriber, error) {
	r.mu.RLock()
	if sub, exists := r.subscribers[chatID]; exists {
		cp := *sub
		r.mu.RUnlock()
		return &cp, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	// Другая горутина могла успеть создать запись.
	if sub, exists := r.subscribers[chatID]; exists {
		cp := *sub
		return &cp, nil
	}
	sub := entity.NewSubscriber(chatID, userID)
	r.subscribers[chatID] = sub

	cp := *sub
	return &cp, nil
}

// Save сохраняет состояние подписчика
func (r *MemorySubscriberRepository) Save(ctx context.Context, sub *entity.Subscriber) error {
	cp := *sub
	r.mu.Lock()
	r.subscribers[sub.ChatID] = &cp
	r.mu.Unlock()

	return nil
}

// UpdateState обновляет состояние подписки
func (r *MemorySubscriberRepository) UpdateState(ctx context.Context, chatID int64, state entity.SubscriptionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub, exists := r.subscribers[chatID]; exists {
		sub.SetState(state)
	}

	return nil
}

// ListActive возвращает копии активных подписчиков по возрастанию Chat ID
func (r *MemorySubscriberRepository) ListActive(ctx context.Context) ([]*entity.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Subscriber, 0, len(r.subscribers))
	for _, sub := range r.subscribers {
		if sub.Active() {
			cp := *sub
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })

	return out, nil
}

// Проверка реализации интерфейса
var _ port.SubscriberRepository = (*MemorySubscriberRepository)(nil)
