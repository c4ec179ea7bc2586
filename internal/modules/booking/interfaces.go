package booking

import (
	"context"
	"time"

	"tutormarket/internal/domain"
	"tutormarket/internal/repository"
)

// BookingRepository is the store the transition engine drives. UpdateStatusFrom
// must be a compare-and-set: the allowed source states travel in the same
// statement as the write.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter, limit, offset int) ([]domain.Booking, int, error)
	UpdateStatusFrom(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) (bool, error)
	UpdateInterval(ctx context.Context, id int64, startAt, endAt time.Time, hours float64, totalAmount int64) error
	CountOverlapping(ctx context.Context, tutorID int64, start, end time.Time, excludeID int64) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ServiceCatalog resolves the offering a booking references; the hourly rate
// is always read from here, never from the request.
type ServiceCatalog interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.TutorService, error)
}

type NotificationSender interface {
	NotifyBookingEvent(ctx context.Context, userID int64, kind domain.NotificationKind, b *domain.Booking) error
}
