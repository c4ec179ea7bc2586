package admin

import "errors"

var (
	ErrValidation  = errors.New("invalid request")
	ErrForbidden   = errors.New("forbidden")
	ErrNotFound    = errors.New("not found")
	ErrEmailExists = errors.New("email already registered")
)
