package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Where("booking_number = ?", number).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

type BookingFilter struct {
	Status        string
	PaymentStatus string
	Limit         int
	Offset        int
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var out []domain.Booking
	err := q.Order("created_at DESC").Limit(limit).Offset(f.Offset).Find(&out).Error
	return out, total, err
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// SetStatusIfNot flips the booking status unless it already holds the target
// value. The conditional update makes the report_ready transition fire exactly
// once even when two finalizations race.
func (r *BookingRepository) SetStatusIfNot(ctx context.Context, id int64, status domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status <> ?", id, status).
		Update("status", status)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// MarkPaymentVerified transitions paid_unverified to verified; the WHERE clause
// is the state check, so a concurrent second verify reports no rows.
func (r *BookingRepository) MarkPaymentVerified(ctx context.Context, id int64, verifiedBy string, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND payment_status = ?", id, domain.PaymentPaidUnverified).
		Updates(map[string]any{
			"payment_status":      domain.PaymentVerified,
			"payment_verified_at": at,
			"payment_verified_by": verifiedBy,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}
