package notification

import (
	"context"

	"tutormarket/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int, error)
	MarkRead(ctx context.Context, id, userID int64) (bool, error)
}

// Pusher delivers a realtime event to a connected user. The chat hub
// implements it.
type Pusher interface {
	Push(userID int64, event interface{}) bool
}
