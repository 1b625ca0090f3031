package domain

import "time"

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportEntered   ReportStatus = "entered"
	ReportFinalized ReportStatus = "finalized"
)

// ParentType distinguishes the two aggregates that carry per-test report tracking.
type ParentType string

const (
	ParentBooking ParentType = "booking"
	ParentWalkin  ParentType = "walkin"
)

// TestReportStatus tracks one test's report lifecycle inside a booking or walk-in
// collection. One row per (parent, test); status only moves forward.
type TestReportStatus struct {
	ID          int64        `json:"id" gorm:"primaryKey;column:id"`
	ParentType  ParentType   `json:"parent_type" gorm:"column:parent_type;uniqueIndex:idx_parent_test"`
	ParentID    int64        `json:"parent_id" gorm:"column:parent_id;uniqueIndex:idx_parent_test"`
	TestID      int64        `json:"test_id" gorm:"column:test_id;uniqueIndex:idx_parent_test"`
	Status      ReportStatus `json:"status" gorm:"column:status"`
	ResultID    *int64       `json:"result_id,omitempty" gorm:"column:result_id"`
	ReportID    *int64       `json:"report_id,omitempty" gorm:"column:report_id"`
	EnteredAt   *time.Time   `json:"entered_at,omitempty" gorm:"column:entered_at"`
	FinalizedAt *time.Time   `json:"finalized_at,omitempty" gorm:"column:finalized_at"`
}

func (TestReportStatus) TableName() string { return "test_report_statuses" }

// Result holds the measured parameter values for one (patient, test) pair.
// Every save inserts a fresh row; drafts are never updated in place.
type Result struct {
	ID               int64            `json:"id" gorm:"primaryKey;column:id"`
	PatientID        int64            `json:"patient_id" gorm:"column:patient_id;index"`
	TestID           int64            `json:"test_id" gorm:"column:test_id"`
	BookingID        *int64           `json:"booking_id,omitempty" gorm:"column:booking_id"`
	Technician       string           `json:"technician" gorm:"column:technician"`
	ReferredBy       string           `json:"referred_by,omitempty" gorm:"column:referred_by"`
	ParameterResults ParameterResults `json:"parameter_results" gorm:"column:parameter_results;type:text"`
	Remarks          string           `json:"remarks,omitempty" gorm:"column:remarks;type:text"`
	Finalized        bool             `json:"finalized" gorm:"column:finalized"`
	CollectedAt      time.Time        `json:"collected_at" gorm:"column:collected_at"`
	CreatedAt        time.Time        `json:"created_at"`
}

func (Result) TableName() string { return "results" }

// Report is the downloadable wrapper around a finalized Result. The secure token
// is the sole credential for unauthenticated download; bookingless reports are
// unconditionally downloadable.
type Report struct {
	ID          int64     `json:"id" gorm:"primaryKey;column:id"`
	ResultID    int64     `json:"result_id" gorm:"column:result_id"`
	PatientID   int64     `json:"patient_id" gorm:"column:patient_id;index"`
	BookingID   *int64    `json:"booking_id,omitempty" gorm:"column:booking_id"`
	SecureToken string    `json:"-" gorm:"column:secure_token;uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Report) TableName() string { return "reports" }
