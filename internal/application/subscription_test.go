package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"road-inspector/internal/domain/entity"
	"road-inspector/internal/infrastructure/storage"
)

func TestSubscriptionService_SubscribeAndUnsubscribe(t *testing.T) {
	repo := storage.NewMemorySubscriberRepository()
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, 10, 1)
	require.NoError(t, err)
	require.Equal(t, entity.StateSubscribed, sub.State)

	require.NoError(t, svc.Unsubscribe(ctx, 10))

	sub, err = repo.Get(ctx, 10, 1)
	require.NoError(t, err)
	require.Equal(t, entity.StateUnsubscribed, sub.State)
}

func TestSubscriptionService_ActiveChats(t *testing.T) {
	repo := storage.NewMemorySubscriberRepository()
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, 20, 2)
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, 10, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(ctx, 30))

	ids, err := svc.ActiveChats(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{10, 20}, ids)
}
