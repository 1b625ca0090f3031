package repository

import (
	"context"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) ListApproved(ctx context.Context, limit int) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("approved = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *ReviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *ReviewRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ?", id).
		Update("approved", approved).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Review{}, id).Error
}
