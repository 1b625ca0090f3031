package repository

import (
	"context"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *ReportRepository) GetByToken(ctx context.Context, token string) (*domain.Report, error) {
	var rep domain.Report
	if err := r.db.WithContext(ctx).Where("secure_token = ?", token).First(&rep).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	var rep domain.Report
	if err := r.db.WithContext(ctx).First(&rep, id).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}
