package booking

import (
	"context"

	"labdesk/internal/domain"
	"labdesk/internal/repository"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByNumber(ctx context.Context, number string) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

type StatusSeeder interface {
	SeedPending(ctx context.Context, parent domain.ParentType, parentID int64, testIDs []int64) error
}

type LabTestRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.LabTest, error)
}

type PackageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.HealthPackage, error)
}

type PatientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
	GetOrCreateByPhone(ctx context.Context, name, phone string) (*domain.Patient, error)
}

// Classifier decides the initial payment status of a new booking.
type Classifier interface {
	Classify(ctx context.Context, method, gatewayTxnID string) domain.PaymentStatus
}

type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, bookingID int64, bookingNumber string) error
	NotifyStatusChanged(ctx context.Context, patientID *int64, bookingNumber, status string) error
}
