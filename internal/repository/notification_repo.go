package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification, data map[string]any) error {
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		n.Data = raw
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListByPatient(ctx context.Context, patientID int64, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.db.WithContext(ctx).
		Where("channel = ? AND patient_id = ?", domain.ChannelPatient, patientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *NotificationRepository) ListAdmin(ctx context.Context, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.db.WithContext(ctx).
		Where("channel = ?", domain.ChannelAdmin).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, channel domain.NotificationChannel) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("channel = ? AND is_read = ?", channel, false).
		Count(&cnt).Error
	return cnt, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllAdminRead(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("channel = ? AND is_read = ?", domain.ChannelAdmin, false).
		Update("is_read", true).Error
}
