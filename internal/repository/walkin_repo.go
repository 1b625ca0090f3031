package repository

import (
	"context"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type WalkinRepository struct {
	db *gorm.DB
}

func NewWalkinRepository(db *gorm.DB) *WalkinRepository {
	return &WalkinRepository{db: db}
}

func (r *WalkinRepository) Create(ctx context.Context, w *domain.WalkinCollection) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WalkinRepository) GetByID(ctx context.Context, id int64) (*domain.WalkinCollection, error) {
	var w domain.WalkinCollection
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalkinRepository) List(ctx context.Context, limit, offset int) ([]domain.WalkinCollection, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.WalkinCollection{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var out []domain.WalkinCollection
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error
	return out, total, err
}

// Delete removes the collection and its per-test status rows. Results and
// reports already issued are kept; they stand on their own.
func (r *WalkinRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("parent_type = ? AND parent_id = ?", domain.ParentWalkin, id).
			Delete(&domain.TestReportStatus{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.WalkinCollection{}, id).Error
	})
}

func (r *WalkinRepository) SetStatusIfNot(ctx context.Context, id int64, status domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.WalkinCollection{}).
		Where("id = ? AND status <> ?", id, status).
		Update("status", status)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}
