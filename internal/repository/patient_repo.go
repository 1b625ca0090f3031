package repository

import (
	"context"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *domain.Patient) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	var p domain.Patient
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) GetByPhone(ctx context.Context, phone string) (*domain.Patient, error) {
	var p domain.Patient
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetOrCreateByPhone resolves guest checkouts to a patient row so reports can
// be generated later.
func (r *PatientRepository) GetOrCreateByPhone(ctx context.Context, name, phone string) (*domain.Patient, error) {
	p, err := r.GetByPhone(ctx, phone)
	if err == nil {
		return p, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	created := &domain.Patient{Name: name, Phone: phone}
	if err := r.Create(ctx, created); err != nil {
		if IsUniqueViolation(err) {
			return r.GetByPhone(ctx, phone)
		}
		return nil, err
	}
	return created, nil
}

func (r *PatientRepository) List(ctx context.Context, limit, offset int) ([]domain.Patient, error) {
	var out []domain.Patient
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}
