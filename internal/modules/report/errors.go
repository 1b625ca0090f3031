package report

import "errors"

var (
	ErrNotFound         = errors.New("parent record not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrTestNotInParent  = errors.New("test is not part of this booking or collection")
	ErrNoPatient        = errors.New("parent record has no patient")
	ErrAlreadyFinalized = errors.New("test report is already finalized")
	ErrValidation       = errors.New("validation error")
	ErrPaymentRequired  = errors.New("payment not verified for this report")
)
