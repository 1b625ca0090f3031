package payment

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"labdesk/internal/domain"
	"labdesk/internal/pkg/logger"
)

type Service struct {
	bookings BookingRepository
	patients PatientRepository
	gateway  Gateway
	notifs   NotificationSender
}

func NewService(bookings BookingRepository, patients PatientRepository, gateway Gateway, notifs NotificationSender) *Service {
	return &Service{
		bookings: bookings,
		patients: patients,
		gateway:  gateway,
		notifs:   notifs,
	}
}

// Classify maps a payment method plus an optional gateway transaction to the
// booking's initial payment status. A pure lookup table: pay-later methods
// carry their own name, a settled gateway transaction is verified, everything
// else awaits manual verification.
func (s *Service) Classify(ctx context.Context, method, gatewayTxnID string) domain.PaymentStatus {
	switch method {
	case string(domain.PaymentCashOnDelivery):
		return domain.PaymentCashOnDelivery
	case string(domain.PaymentPayAtLab):
		return domain.PaymentPayAtLab
	}

	if gatewayTxnID != "" && s.gateway != nil {
		ok, err := s.gateway.VerifyTransaction(ctx, gatewayTxnID)
		if err != nil {
			logger.L().Warn("gateway verification failed, falling back to manual review",
				zap.String("txn_id", gatewayTxnID),
				zap.Error(err),
			)
		} else if ok {
			return domain.PaymentVerified
		}
	}

	return domain.PaymentPaidUnverified
}

// VerifyBookingPayment is the admin action moving paid_unverified to verified.
// The repository's conditional update holds the state check, so a concurrent
// second verify loses cleanly.
func (s *Service) VerifyBookingPayment(ctx context.Context, bookingID int64, verifiedBy string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.PaymentStatus != domain.PaymentPaidUnverified {
		return nil, ErrPaymentState
	}

	ok, err := s.bookings.MarkPaymentVerified(ctx, bookingID, verifiedBy, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race to another admin between read and update.
		return nil, ErrPaymentState
	}

	b, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		go func(b domain.Booking) {
			email := ""
			if b.PatientID != nil {
				if p, err := s.patients.GetByID(context.Background(), *b.PatientID); err == nil {
					email = p.Email
				}
			}
			if err := s.notifs.NotifyPaymentVerified(context.Background(), b.PatientID, email, b.BookingNumber, b.ID); err != nil {
				logger.L().Warn("payment-verified notification failed",
					zap.Int64("booking_id", b.ID),
					zap.Error(err),
				)
			}
		}(*b)
	}

	return b, nil
}
