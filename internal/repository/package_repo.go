package repository

import (
	"context"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) Create(ctx context.Context, p *domain.HealthPackage) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PackageRepository) Update(ctx context.Context, p *domain.HealthPackage) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PackageRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.HealthPackage{}, id).Error
}

func (r *PackageRepository) GetByID(ctx context.Context, id int64) (*domain.HealthPackage, error) {
	var p domain.HealthPackage
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PackageRepository) ListActive(ctx context.Context) ([]domain.HealthPackage, error) {
	var out []domain.HealthPackage
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("price").Find(&out).Error
	return out, err
}

func (r *PackageRepository) ListAll(ctx context.Context) ([]domain.HealthPackage, error) {
	var out []domain.HealthPackage
	err := r.db.WithContext(ctx).Order("price").Find(&out).Error
	return out, err
}
