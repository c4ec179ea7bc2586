package booking

import (
	"time"

	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/pagination"
)

type CreateBookingRequest struct {
	TutorID   int64     `json:"tutor_id" binding:"required"`
	ServiceID int64     `json:"service_id" binding:"required"`
	SubjectID int64     `json:"subject_id" binding:"required"`
	StudentID int64     `json:"student_id"`
	StartAt   time.Time `json:"start_at" binding:"required"`
	EndAt     time.Time `json:"end_at" binding:"required"`
}

// UpdateBookingRequest is the admin edit. Nil fields are left untouched;
// status changes go through the same transition table as the dedicated
// operations.
type UpdateBookingRequest struct {
	StartAt *time.Time `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`
	Status  *string    `json:"status"`
}

type ListBookingsQuery struct {
	UserType string `form:"user_type"`
	UserID   int64  `form:"user_id"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

type BookingList struct {
	Bookings []domain.Booking `json:"bookings"`
	pagination.Page
}
