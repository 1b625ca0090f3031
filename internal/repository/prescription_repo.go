package repository

import (
	"context"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type PrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

func (r *PrescriptionRepository) Create(ctx context.Context, p *domain.Prescription) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PrescriptionRepository) List(ctx context.Context, limit, offset int) ([]domain.Prescription, error) {
	var out []domain.Prescription
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}
