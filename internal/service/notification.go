package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
)

// NotificationService exposes a user's notifications. Recipients may only
// read and mark their own.
type NotificationService interface {
	ListForUser(ctx context.Context, actor models.Actor) ([]*models.Notification, error)
	MarkRead(ctx context.Context, actor models.Actor, id uuid.UUID) error
	MarkAllRead(ctx context.Context, actor models.Actor) error
}

type notificationService struct {
	store NotificationStore
}

func NewNotificationService(store NotificationStore) NotificationService {
	return &notificationService{store: store}
}

func (s *notificationService) ListForUser(ctx context.Context, actor models.Actor) ([]*models.Notification, error) {
	return s.store.ListByUser(ctx, actor.ID)
}

func (s *notificationService) MarkRead(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	return s.store.MarkRead(ctx, id, actor.ID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor models.Actor) error {
	return s.store.MarkAllRead(ctx, actor.ID)
}
