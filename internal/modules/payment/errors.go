package payment

import "errors"

var (
	ErrNotFound     = errors.New("booking not found")
	ErrPaymentState = errors.New("booking is not awaiting payment verification")
)
