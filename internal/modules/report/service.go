package report

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"labdesk/internal/domain"
	"labdesk/internal/pkg/logger"
	"labdesk/internal/pkg/normalrange"
	"labdesk/internal/pkg/token"
)

const defaultTechnician = "Lab Technician"

type Service struct {
	bookings BookingRepository
	walkins  WalkinRepository
	statuses StatusRepository
	results  ResultRepository
	reports  ReportRepository
	patients PatientRepository
	tests    LabTestRepository
	settings SettingsRepository
	notifs   NotificationSender
}

func NewService(
	bookings BookingRepository,
	walkins WalkinRepository,
	statuses StatusRepository,
	results ResultRepository,
	reports ReportRepository,
	patients PatientRepository,
	tests LabTestRepository,
	settings SettingsRepository,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings: bookings,
		walkins:  walkins,
		statuses: statuses,
		results:  results,
		reports:  reports,
		patients: patients,
		tests:    tests,
		settings: settings,
		notifs:   notifs,
	}
}

// parentRef is the common shape of the two aggregates that carry per-test
// report tracking.
type parentRef struct {
	kind      domain.ParentType
	id        int64
	patientID *int64
	testIDs   domain.Int64List
	bookingID *int64
	reference string
	status    string
}

func (s *Service) resolveParent(ctx context.Context, kind domain.ParentType, id int64) (*parentRef, error) {
	switch kind {
	case domain.ParentBooking:
		b, err := s.bookings.GetByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		bid := b.ID
		return &parentRef{
			kind:      kind,
			id:        b.ID,
			patientID: b.PatientID,
			testIDs:   b.TestIDs,
			bookingID: &bid,
			reference: b.BookingNumber,
			status:    string(b.Status),
		}, nil
	case domain.ParentWalkin:
		w, err := s.walkins.GetByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &parentRef{
			kind:      kind,
			id:        w.ID,
			patientID: w.PatientID,
			testIDs:   w.TestIDs,
			reference: w.CollectionNumber,
			status:    string(w.Status),
		}, nil
	}
	return nil, ErrNotFound
}

// SaveTestReport records a draft or final result for one test of a booking or
// walk-in collection. Every save inserts a fresh Result row; the tracker row
// is repointed at it. Finalizing the last open test flips the parent to
// report_ready and fires the completion notifications exactly once.
func (s *Service) SaveTestReport(ctx context.Context, kind domain.ParentType, parentID, testID int64, req SaveReportRequest) (*SaveReportResponse, error) {
	parent, err := s.resolveParent(ctx, kind, parentID)
	if err != nil {
		return nil, err
	}

	if !parent.testIDs.Contains(testID) {
		return nil, ErrTestNotInParent
	}
	if parent.patientID == nil {
		return nil, ErrNoPatient
	}

	row, err := s.statuses.GetByParentAndTest(ctx, kind, parentID, testID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTestNotInParent
		}
		return nil, err
	}
	if row.Status == domain.ReportFinalized {
		return nil, ErrAlreadyFinalized
	}

	technician := req.Technician
	if technician == "" {
		technician = defaultTechnician
	}

	params := make(domain.ParameterResults, 0, len(req.ParameterResults))
	for _, p := range req.ParameterResults {
		abnormal := false
		if p.Abnormal != nil {
			abnormal = *p.Abnormal
		} else {
			abnormal = normalrange.IsAbnormal(p.Value, p.NormalRange)
		}
		params = append(params, domain.ParameterResult{
			Name:        p.Name,
			Value:       p.Value,
			Unit:        p.Unit,
			NormalRange: p.NormalRange,
			Abnormal:    abnormal,
		})
	}

	now := time.Now()
	result := &domain.Result{
		PatientID:        *parent.patientID,
		TestID:           testID,
		BookingID:        parent.bookingID,
		Technician:       technician,
		ReferredBy:       req.ReferredBy,
		ParameterResults: params,
		Remarks:          req.Remarks,
		Finalized:        req.Finalize,
		CollectedAt:      now,
	}
	if err := s.results.Create(ctx, result); err != nil {
		return nil, err
	}

	if !req.Finalize {
		ok, err := s.statuses.MarkEntered(ctx, kind, parentID, testID, result.ID, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Finalized by a concurrent request between our read and write.
			return nil, ErrAlreadyFinalized
		}
		return &SaveReportResponse{
			ResultID: result.ID,
			Status:   domain.ReportEntered,
		}, nil
	}

	secureToken, err := token.NewSecureToken()
	if err != nil {
		return nil, err
	}
	rep := &domain.Report{
		ResultID:    result.ID,
		PatientID:   *parent.patientID,
		BookingID:   parent.bookingID,
		SecureToken: secureToken,
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, err
	}

	ok, err := s.statuses.MarkFinalized(ctx, kind, parentID, testID, result.ID, rep.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyFinalized
	}

	allComplete, err := s.rollupIfComplete(ctx, parent)
	if err != nil {
		// The result and report are committed; the rollup will catch up on the
		// next finalize. Surface nothing to the technician.
		logger.L().Warn("report_ready rollup failed",
			zap.String("parent_type", string(kind)),
			zap.Int64("parent_id", parentID),
			zap.Error(err),
		)
	}

	repID := rep.ID
	return &SaveReportResponse{
		ResultID:    result.ID,
		ReportID:    &repID,
		Status:      domain.ReportFinalized,
		AllComplete: allComplete,
	}, nil
}

// rollupIfComplete flips the parent to report_ready when no open test remains.
// The conditional status update guarantees the notification fires once even if
// two finalizations race to the rollup.
func (s *Service) rollupIfComplete(ctx context.Context, parent *parentRef) (bool, error) {
	open, err := s.statuses.CountNotFinalized(ctx, parent.kind, parent.id)
	if err != nil {
		return false, err
	}
	if open > 0 {
		return false, nil
	}

	var flipped bool
	switch parent.kind {
	case domain.ParentBooking:
		flipped, err = s.bookings.SetStatusIfNot(ctx, parent.id, domain.BookingReportReady)
	case domain.ParentWalkin:
		flipped, err = s.walkins.SetStatusIfNot(ctx, parent.id, domain.BookingReportReady)
	}
	if err != nil {
		return false, err
	}
	if !flipped {
		return true, nil
	}

	if s.notifs != nil {
		patientID := *parent.patientID
		reference := parent.reference
		data := map[string]any{
			"parent_type": string(parent.kind),
			"parent_id":   parent.id,
		}
		go func() {
			email := ""
			if p, err := s.patients.GetByID(context.Background(), patientID); err == nil {
				email = p.Email
			}
			if err := s.notifs.NotifyReportReady(context.Background(), patientID, email, reference, data); err != nil {
				logger.L().Warn("report-ready notification failed",
					zap.String("reference", reference),
					zap.Error(err),
				)
			}
		}()
	}

	return true, nil
}

// GetDetails merges the parent, its patient, and its catalog tests with the
// per-test tracker rows and progress counts.
func (s *Service) GetDetails(ctx context.Context, kind domain.ParentType, parentID int64) (*Details, error) {
	parent, err := s.resolveParent(ctx, kind, parentID)
	if err != nil {
		return nil, err
	}

	rows, err := s.statuses.GetByParent(ctx, kind, parentID)
	if err != nil {
		return nil, err
	}

	tests, err := s.tests.GetByIDs(ctx, parent.testIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(tests))
	for _, t := range tests {
		names[t.ID] = t.Name
	}

	byTest := make(map[int64]domain.TestReportStatus, len(rows))
	for _, r := range rows {
		byTest[r.TestID] = r
	}

	details := &Details{
		ParentType: kind,
		ParentID:   parentID,
		Reference:  parent.reference,
		Status:     parent.status,
		Tests:      make([]TestStatusRow, 0, len(parent.testIDs)),
	}

	if parent.patientID != nil {
		if p, err := s.patients.GetByID(ctx, *parent.patientID); err == nil {
			details.Patient = p
		}
	}

	for _, testID := range parent.testIDs {
		row := TestStatusRow{
			TestID:   testID,
			TestName: names[testID],
			Status:   domain.ReportPending,
		}
		if tr, ok := byTest[testID]; ok {
			row.Status = tr.Status
			row.ResultID = tr.ResultID
			row.ReportID = tr.ReportID
			row.EnteredAt = tr.EnteredAt
			row.FinalizedAt = tr.FinalizedAt
		}

		details.Progress.Total++
		switch row.Status {
		case domain.ReportEntered:
			details.Progress.Entered++
		case domain.ReportFinalized:
			details.Progress.Finalized++
		default:
			details.Progress.Pending++
		}

		details.Tests = append(details.Tests, row)
	}

	return details, nil
}

// Download resolves a secure token into the data needed to render the report.
// The payment gate re-reads the booking at download time: verifying a payment
// unlocks already-minted tokens without reissuing them.
func (s *Service) Download(ctx context.Context, secureToken string) (*RenderData, error) {
	rep, err := s.reports.GetByToken(ctx, secureToken)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if rep.BookingID != nil {
		b, err := s.bookings.GetByID(ctx, *rep.BookingID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}
		if b != nil && !b.PaymentStatus.PaymentClears() {
			return nil, ErrPaymentRequired
		}
	}

	result, err := s.results.GetByID(ctx, rep.ResultID)
	if err != nil {
		return nil, err
	}

	patient, err := s.patients.GetByID(ctx, rep.PatientID)
	if err != nil {
		return nil, err
	}

	testName := ""
	if t, err := s.tests.GetByID(ctx, result.TestID); err == nil {
		testName = t.Name
	}

	lab, err := s.settings.Get(ctx)
	if err != nil {
		lab = &domain.LabSettings{LabName: "Diagnostics Lab"}
	}

	return &RenderData{
		Lab:         lab,
		Patient:     patient,
		TestName:    testName,
		Result:      result,
		GeneratedAt: time.Now(),
	}, nil
}
