package port

import (
	"context"

	"road-inspector/internal/domain/entity"
)

// SubscriberRepository интерфейс хранилища подписчиков
type SubscriberRepository interface {
	// Get возвращает подписчика по Chat ID, создаёт нового если не найден
	Get(ctx context.Context, chatID, userID int64) (*entity.Subscriber, error)

	// Save сохраняет состояние подписчика
	Save(ctx context.Context, subscriber *entity.Subscriber) error

	// UpdateState обновляет состояние подписки
	UpdateState(ctx context.Context, chatID int64, state entity.SubscriptionState) error

	// ListActive возвращает активных подписчиков
	ListActive(ctx context.Context) ([]*entity.Subscriber, error)
}
