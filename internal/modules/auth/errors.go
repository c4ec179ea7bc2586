package auth

import "errors"

var (
	ErrValidation         = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrInvalidRole        = errors.New("invalid role")
)
