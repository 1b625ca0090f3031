package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"labdesk/internal/domain"
)

// TestReportStatusRepository owns the normalized per-test tracker rows. Keeping
// one row per (parent, test) makes every lifecycle update a single-row write
// instead of a rewrite of a JSON array on the parent.
type TestReportStatusRepository struct {
	db *gorm.DB
}

func NewTestReportStatusRepository(db *gorm.DB) *TestReportStatusRepository {
	return &TestReportStatusRepository{db: db}
}

// SeedPending creates a pending row for each test of a new parent.
func (r *TestReportStatusRepository) SeedPending(ctx context.Context, parent domain.ParentType, parentID int64, testIDs []int64) error {
	rows := make([]domain.TestReportStatus, 0, len(testIDs))
	for _, id := range testIDs {
		rows = append(rows, domain.TestReportStatus{
			ParentType: parent,
			ParentID:   parentID,
			TestID:     id,
			Status:     domain.ReportPending,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *TestReportStatusRepository) GetByParent(ctx context.Context, parent domain.ParentType, parentID int64) ([]domain.TestReportStatus, error) {
	var out []domain.TestReportStatus
	err := r.db.WithContext(ctx).
		Where("parent_type = ? AND parent_id = ?", parent, parentID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *TestReportStatusRepository) GetByParentAndTest(ctx context.Context, parent domain.ParentType, parentID, testID int64) (*domain.TestReportStatus, error) {
	var row domain.TestReportStatus
	err := r.db.WithContext(ctx).
		Where("parent_type = ? AND parent_id = ? AND test_id = ?", parent, parentID, testID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// MarkEntered records a draft save: repoint the tracker at the fresh result.
// Finalized rows are excluded by the WHERE clause; status never moves backward.
func (r *TestReportStatusRepository) MarkEntered(ctx context.Context, parent domain.ParentType, parentID, testID, resultID int64, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.TestReportStatus{}).
		Where("parent_type = ? AND parent_id = ? AND test_id = ? AND status <> ?",
			parent, parentID, testID, domain.ReportFinalized).
		Updates(map[string]any{
			"status":     domain.ReportEntered,
			"result_id":  resultID,
			"entered_at": at,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *TestReportStatusRepository) MarkFinalized(ctx context.Context, parent domain.ParentType, parentID, testID, resultID, reportID int64, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.TestReportStatus{}).
		Where("parent_type = ? AND parent_id = ? AND test_id = ? AND status <> ?",
			parent, parentID, testID, domain.ReportFinalized).
		Updates(map[string]any{
			"status":       domain.ReportFinalized,
			"result_id":    resultID,
			"report_id":    reportID,
			"entered_at":   at,
			"finalized_at": at,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// CountNotFinalized drives the all-finalized rollup on the parent.
func (r *TestReportStatusRepository) CountNotFinalized(ctx context.Context, parent domain.ParentType, parentID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.TestReportStatus{}).
		Where("parent_type = ? AND parent_id = ? AND status <> ?", parent, parentID, domain.ReportFinalized).
		Count(&cnt).Error
	return cnt, err
}
