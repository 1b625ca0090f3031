package repository

import (
	"context"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type LabTestRepository struct {
	db *gorm.DB
}

func NewLabTestRepository(db *gorm.DB) *LabTestRepository {
	return &LabTestRepository{db: db}
}

func (r *LabTestRepository) Create(ctx context.Context, t *domain.LabTest) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *LabTestRepository) Update(ctx context.Context, t *domain.LabTest) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *LabTestRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.LabTest{}, id).Error
}

func (r *LabTestRepository) GetByID(ctx context.Context, id int64) (*domain.LabTest, error) {
	var t domain.LabTest
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *LabTestRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.LabTest, error) {
	var out []domain.LabTest
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *LabTestRepository) ListActive(ctx context.Context) ([]domain.LabTest, error) {
	var out []domain.LabTest
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&out).Error
	return out, err
}

func (r *LabTestRepository) ListAll(ctx context.Context) ([]domain.LabTest, error) {
	var out []domain.LabTest
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}
