package admin

import (
	"context"

	"tutormarket/internal/domain"
	"tutormarket/internal/repository"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error
	List(ctx context.Context, f repository.UserFilter, limit, offset int) ([]domain.User, int, error)
	CountByRole(ctx context.Context) (map[domain.UserRole]int64, error)
}

type BookingStats interface {
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
}
