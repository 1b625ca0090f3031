package repository

import (
	"context"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type ResultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) Create(ctx context.Context, res *domain.Result) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ResultRepository) GetByID(ctx context.Context, id int64) (*domain.Result, error) {
	var res domain.Result
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResultRepository) ListByPatient(ctx context.Context, patientID int64) ([]domain.Result, error) {
	var out []domain.Result
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
