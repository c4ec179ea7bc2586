package chat

import (
	"context"

	"tutormarket/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListConversation(ctx context.Context, userID, peerID int64, limit, offset int) ([]domain.Message, int, error)
}

type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
