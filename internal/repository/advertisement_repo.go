package repository

import (
	"context"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type AdvertisementRepository struct {
	db *gorm.DB
}

func NewAdvertisementRepository(db *gorm.DB) *AdvertisementRepository {
	return &AdvertisementRepository{db: db}
}

func (r *AdvertisementRepository) Create(ctx context.Context, a *domain.Advertisement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AdvertisementRepository) Update(ctx context.Context, a *domain.Advertisement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AdvertisementRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Advertisement{}, id).Error
}

func (r *AdvertisementRepository) GetByID(ctx context.Context, id int64) (*domain.Advertisement, error) {
	var a domain.Advertisement
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdvertisementRepository) ListActive(ctx context.Context) ([]domain.Advertisement, error) {
	var out []domain.Advertisement
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *AdvertisementRepository) ListAll(ctx context.Context) ([]domain.Advertisement, error) {
	var out []domain.Advertisement
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}
