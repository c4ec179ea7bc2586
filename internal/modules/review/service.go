package review

import (
	"context"
	"errors"
	"strings"

	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/pagination"
	"tutormarket/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	reviews  ReviewRepository
	bookings BookingGate
	tutors   TutorRatingUpdater
}

func NewService(reviews ReviewRepository, bookings BookingGate, tutors TutorRatingUpdater) *Service {
	return &Service{
		reviews:  reviews,
		bookings: bookings,
		tutors:   tutors,
	}
}

// Create stores a review for a completed booking. The student and tutor ids
// are taken from the booking, never from the request, and one review per
// booking is enforced by the store's unique index.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateReviewRequest) (*domain.Review, error) {
	if actor.Role != domain.RoleStudent {
		return nil, ErrForbidden
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.StudentID != actor.UserID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrReviewNotAllowed
	}

	rv := &domain.Review{
		BookingID: b.ID,
		StudentID: b.StudentID,
		TutorID:   b.TutorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	// rating rollup; the review itself is already committed
	if avg, count, err := s.reviews.AggregateForTutor(ctx, rv.TutorID); err == nil {
		_ = s.tutors.UpdateRating(ctx, rv.TutorID, avg, count)
	}

	return rv, nil
}

func (s *Service) List(ctx context.Context, q ListReviewsQuery) (*ReviewList, error) {
	f := repository.ReviewFilter{
		StudentID: q.StudentID,
		TutorID:   q.TutorID,
		BookingID: q.BookingID,
	}

	page, perPage := pagination.Clamp(q.Page, q.PerPage)
	items, total, err := s.reviews.List(ctx, f, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, err
	}

	return &ReviewList{
		Reviews: items,
		Page:    pagination.NewPage(total, page, perPage),
	}, nil
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
