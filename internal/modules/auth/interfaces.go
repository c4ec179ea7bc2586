package auth

import (
	"context"

	"tutormarket/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type TutorProfileWriter interface {
	CreateProfile(ctx context.Context, p *domain.TutorProfile) error
}

type jwtService interface {
	GenerateToken(userID int64, role domain.UserRole) (string, error)
}
