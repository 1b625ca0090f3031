package report

import (
	"time"

	"labdesk/internal/domain"
)

// ParameterResultInput mirrors domain.ParameterResult with an optional
// abnormal flag: clients usually compute it, the server fills the gap.
type ParameterResultInput struct {
	Name        string `json:"name" binding:"required"`
	Value       string `json:"value" binding:"required"`
	Unit        string `json:"unit"`
	NormalRange string `json:"normalRange"`
	Abnormal    *bool  `json:"abnormal"`
}

type SaveReportRequest struct {
	Technician       string                 `json:"technician"`
	ReferredBy       string                 `json:"referredBy"`
	ParameterResults []ParameterResultInput `json:"parameterResults" binding:"required,min=1,dive"`
	Remarks          string                 `json:"remarks"`
	Finalize         bool                   `json:"finalize"`
}

type SaveReportResponse struct {
	ResultID    int64               `json:"result_id"`
	ReportID    *int64              `json:"report_id,omitempty"`
	Status      domain.ReportStatus `json:"status"`
	AllComplete bool                `json:"all_complete"`
}

// TestStatusRow merges the tracker row with the catalog entry for the
// report-details view.
type TestStatusRow struct {
	TestID      int64               `json:"test_id"`
	TestName    string              `json:"test_name"`
	Status      domain.ReportStatus `json:"status"`
	ResultID    *int64              `json:"result_id,omitempty"`
	ReportID    *int64              `json:"report_id,omitempty"`
	EnteredAt   *time.Time          `json:"entered_at,omitempty"`
	FinalizedAt *time.Time          `json:"finalized_at,omitempty"`
}

type Progress struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Entered   int `json:"entered"`
	Finalized int `json:"finalized"`
}

type Details struct {
	ParentType domain.ParentType `json:"parent_type"`
	ParentID   int64             `json:"parent_id"`
	Reference  string            `json:"reference"`
	Status     string            `json:"status"`
	Patient    *domain.Patient   `json:"patient,omitempty"`
	Tests      []TestStatusRow   `json:"tests"`
	Progress   Progress          `json:"progress"`
}
