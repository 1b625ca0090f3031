package repository

import (
	"context"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the singleton settings row, creating a default one on first use.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.LabSettings, error) {
	var s domain.LabSettings
	err := r.db.WithContext(ctx).First(&s, 1).Error
	if err == gorm.ErrRecordNotFound {
		s = domain.LabSettings{ID: 1, LabName: "LabDesk Diagnostics"}
		if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *domain.LabSettings) error {
	s.ID = 1
	return r.db.WithContext(ctx).Save(s).Error
}
