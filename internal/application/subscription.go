package app

import (
	"context"

	"road-inspector/internal/domain/entity"
	"road-inspector/internal/domain/port"
)

// SubscriptionService управляет подписками чатов на уведомления о дефектах.
type SubscriptionService struct {
	repo port.SubscriberRepository
}

func NewSubscriptionService(repo port.SubscriberRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo}
}

func (s *SubscriptionService) SetState(ctx context.Context, chatID, userID int64, state entity.SubscriptionState) (*entity.Subscriber, error) {
	sub, err := s.repo.Get(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	sub.SetState(state)
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *SubscriptionService) Subscribe(ctx context.Context, chatID, userID int64) (*entity.Subscriber, error) {
	return s.SetState(ctx, chatID, userID, entity.StateSubscribed)
}

// Unsubscribe отключает уведомления чата. Неизвестный чат не создаётся.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, chatID int64) error {
	return s.repo.UpdateState(ctx, chatID, entity.StateUnsubscribed)
}

// ActiveChats возвращает Chat ID всех активных подписчиков.
func (s *SubscriptionService) ActiveChats(ctx context.Context) ([]int64, error) {
	subs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(subs))
	for i, sub := range subs {
		ids[i] = sub.ChatID
	}
	return ids, nil
}
