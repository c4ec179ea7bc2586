package review

import (
	"context"

	"tutormarket/internal/domain"
	"tutormarket/internal/repository"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	List(ctx context.Context, f repository.ReviewFilter, limit, offset int) ([]domain.Review, int, error)
	AggregateForTutor(ctx context.Context, tutorID int64) (float64, int, error)
}

// BookingGate lets the review service verify the student actually finished
// the session being reviewed.
type BookingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type TutorRatingUpdater interface {
	UpdateRating(ctx context.Context, userID int64, avg float64, count int) error
}
