package chat

import "errors"

var (
	ErrValidation       = errors.New("invalid request")
	ErrRecipientUnknown = errors.New("recipient not found")
	ErrSelfMessage      = errors.New("cannot message yourself")
)
