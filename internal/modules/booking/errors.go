package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidInterval   = errors.New("end time must be after start time")
	ErrInvalidTransition = errors.New("status transition not permitted")
	ErrNotFound          = errors.New("booking not found")
	ErrForbidden         = errors.New("forbidden")
	ErrTutorBusy         = errors.New("tutor already booked for this interval")
)
