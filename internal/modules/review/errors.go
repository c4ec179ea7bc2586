package review

import "errors"

var (
	ErrValidation       = errors.New("invalid request")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrReviewExists     = errors.New("review already exists for booking")
	ErrReviewNotAllowed = errors.New("review not allowed")
)
