package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"labdesk/internal/domain"
	"labdesk/internal/pkg/logger"
	"labdesk/internal/repository"
)

type Service struct {
	bookings   BookingRepository
	statuses   StatusSeeder
	tests      LabTestRepository
	packages   PackageRepository
	patients   PatientRepository
	classifier Classifier
	notifs     NotificationSender
}

func NewService(
	bookings BookingRepository,
	statuses StatusSeeder,
	tests LabTestRepository,
	packages PackageRepository,
	patients PatientRepository,
	classifier Classifier,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings:   bookings,
		statuses:   statuses,
		tests:      tests,
		packages:   packages,
		patients:   patients,
		classifier: classifier,
		notifs:     notifs,
	}
}

func newBookingNumber() string {
	return "LD-" + strings.ToUpper(uuid.NewString()[:8])
}

// CreateBooking handles guest and authenticated checkout. A package expands to
// its test list at package price; individual tests are summed. The payment
// status comes from the classifier's lookup.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	slotDate, err := time.Parse("2006-01-02", req.SlotDate)
	if err != nil {
		return nil, ErrValidation
	}

	testIDs := req.TestIDs
	var total float64
	var packageID *int64

	if req.PackageID != nil {
		pkg, err := s.packages.GetByID(ctx, *req.PackageID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrValidation
			}
			return nil, err
		}
		testIDs = pkg.TestIDs
		total = pkg.Price
		packageID = &pkg.ID
	} else {
		if len(testIDs) == 0 {
			return nil, ErrValidation
		}
		found, err := s.tests.GetByIDs(ctx, testIDs)
		if err != nil {
			return nil, err
		}
		if len(found) != len(dedupe(testIDs)) {
			return nil, ErrUnknownTest
		}
		for _, t := range found {
			total += t.Price
		}
	}

	var patientID *int64
	guestName, guestPhone := "", ""
	switch {
	case req.PatientID != nil:
		p, err := s.patients.GetByID(ctx, *req.PatientID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrValidation
			}
			return nil, err
		}
		patientID = &p.ID
	case req.Phone != "":
		p, err := s.patients.GetOrCreateByPhone(ctx, req.Name, req.Phone)
		if err != nil {
			return nil, err
		}
		patientID = &p.ID
	default:
		// Guest without a phone stays unlinked; reports cannot be generated
		// until an admin attaches a patient.
		guestName, guestPhone = req.Name, req.Phone
	}

	paymentStatus := s.classifier.Classify(ctx, req.PaymentMethod, req.GatewayTxnID)

	b := &domain.Booking{
		BookingNumber: newBookingNumber(),
		PatientID:     patientID,
		GuestName:     guestName,
		GuestPhone:    guestPhone,
		TestIDs:       domain.Int64List(dedupe(testIDs)),
		PackageID:     packageID,
		SlotDate:      slotDate,
		SlotTime:      req.SlotTime,
		Address:       req.Address,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Status:        domain.BookingPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: paymentStatus,
		GatewayTxnID:  req.GatewayTxnID,
		TotalAmount:   total,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if repository.IsUniqueViolation(err) {
			// Booking number collision; one retry with a fresh number.
			b.BookingNumber = newBookingNumber()
			if err := s.bookings.Create(ctx, b); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	if err := s.statuses.SeedPending(ctx, domain.ParentBooking, b.ID, b.TestIDs); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		go func(id int64, number string) {
			if err := s.notifs.NotifyBookingCreated(context.Background(), id, number); err != nil {
				logger.L().Warn("booking-created notification failed",
					zap.Int64("booking_id", id),
					zap.Error(err),
				)
			}
		}(b.ID, b.BookingNumber)
	}

	return b, nil
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	b, err := s.bookings.GetByNumber(ctx, number)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error) {
	return s.bookings.List(ctx, f)
}

// adminSettable is what an admin may set directly; report_ready is system-set
// by the report rollup.
var adminSettable = map[domain.BookingStatus]bool{
	domain.BookingCollected:  true,
	domain.BookingProcessing: true,
	domain.BookingDelivered:  true,
	domain.BookingCancelled:  true,
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error) {
	next := domain.BookingStatus(status)
	if !adminSettable[next] {
		return nil, ErrBadTransition
	}

	if _, err := s.bookings.GetByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.bookings.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		go func(patientID *int64, number, status string) {
			if err := s.notifs.NotifyStatusChanged(context.Background(), patientID, number, status); err != nil {
				logger.L().Warn("status-changed notification failed",
					zap.String("booking_number", number),
					zap.Error(err),
				)
			}
		}(b.PatientID, b.BookingNumber, string(b.Status))
	}

	return b, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
