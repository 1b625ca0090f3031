package walkin

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"labdesk/internal/domain"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("walk-in collection not found")
)

type WalkinRepository interface {
	Create(ctx context.Context, w *domain.WalkinCollection) error
	GetByID(ctx context.Context, id int64) (*domain.WalkinCollection, error)
	List(ctx context.Context, limit, offset int) ([]domain.WalkinCollection, int64, error)
	Delete(ctx context.Context, id int64) error
}

type StatusSeeder interface {
	SeedPending(ctx context.Context, parent domain.ParentType, parentID int64, testIDs []int64) error
}

type PatientRepository interface {
	GetOrCreateByPhone(ctx context.Context, name, phone string) (*domain.Patient, error)
}

type LabTestRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.LabTest, error)
}

type CreateRequest struct {
	ReferredBy   string  `json:"referred_by" binding:"required"`
	PatientName  string  `json:"patient_name" binding:"required"`
	PatientPhone string  `json:"patient_phone" binding:"required"`
	TestIDs      []int64 `json:"test_ids" binding:"required,min=1"`
	Notes        string  `json:"notes"`
}

type Service struct {
	walkins  WalkinRepository
	statuses StatusSeeder
	patients PatientRepository
	tests    LabTestRepository
}

func NewService(walkins WalkinRepository, statuses StatusSeeder, patients PatientRepository, tests LabTestRepository) *Service {
	return &Service{walkins: walkins, statuses: statuses, patients: patients, tests: tests}
}

// Create registers a sample collection brought in by a referring doctor or
// clinic. The patient is always resolved up front so report entry can start
// immediately.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.WalkinCollection, error) {
	found, err := s.tests.GetByIDs(ctx, req.TestIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(req.TestIDs) {
		return nil, ErrValidation
	}

	p, err := s.patients.GetOrCreateByPhone(ctx, req.PatientName, req.PatientPhone)
	if err != nil {
		return nil, err
	}

	w := &domain.WalkinCollection{
		CollectionNumber: "WC-" + strings.ToUpper(uuid.NewString()[:8]),
		ReferredBy:       req.ReferredBy,
		PatientID:        &p.ID,
		TestIDs:          domain.Int64List(req.TestIDs),
		Status:           domain.BookingCollected,
		Notes:            req.Notes,
	}
	if err := s.walkins.Create(ctx, w); err != nil {
		return nil, err
	}

	if err := s.statuses.SeedPending(ctx, domain.ParentWalkin, w.ID, w.TestIDs); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.WalkinCollection, int64, error) {
	return s.walkins.List(ctx, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.walkins.GetByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return s.walkins.Delete(ctx, id)
}
