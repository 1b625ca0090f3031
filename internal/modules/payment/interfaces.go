package payment

import (
	"context"
	"time"

	"labdesk/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	MarkPaymentVerified(ctx context.Context, id int64, verifiedBy string, at time.Time) (bool, error)
}

type PatientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
}

type NotificationSender interface {
	NotifyPaymentVerified(ctx context.Context, patientID *int64, patientEmail, bookingNumber string, bookingID int64) error
}
