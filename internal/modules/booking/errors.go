package booking

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("booking not found")
	ErrUnknownTest   = errors.New("unknown test id")
	ErrBadTransition = errors.New("invalid status transition")
)
