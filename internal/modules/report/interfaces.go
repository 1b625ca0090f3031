package report

import (
	"context"
	"time"

	"labdesk/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetStatusIfNot(ctx context.Context, id int64, status domain.BookingStatus) (bool, error)
}

type WalkinRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WalkinCollection, error)
	SetStatusIfNot(ctx context.Context, id int64, status domain.BookingStatus) (bool, error)
}

type StatusRepository interface {
	GetByParent(ctx context.Context, parent domain.ParentType, parentID int64) ([]domain.TestReportStatus, error)
	GetByParentAndTest(ctx context.Context, parent domain.ParentType, parentID, testID int64) (*domain.TestReportStatus, error)
	MarkEntered(ctx context.Context, parent domain.ParentType, parentID, testID, resultID int64, at time.Time) (bool, error)
	MarkFinalized(ctx context.Context, parent domain.ParentType, parentID, testID, resultID, reportID int64, at time.Time) (bool, error)
	CountNotFinalized(ctx context.Context, parent domain.ParentType, parentID int64) (int64, error)
}

type ResultRepository interface {
	Create(ctx context.Context, res *domain.Result) error
	GetByID(ctx context.Context, id int64) (*domain.Result, error)
}

type ReportRepository interface {
	Create(ctx context.Context, rep *domain.Report) error
	GetByToken(ctx context.Context, token string) (*domain.Report, error)
}

type PatientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
}

type LabTestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.LabTest, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.LabTest, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.LabSettings, error)
}

type NotificationSender interface {
	NotifyReportReady(ctx context.Context, patientID int64, patientEmail, reference string, data map[string]any) error
}
