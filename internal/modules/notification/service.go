package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"labdesk/internal/domain"
	"labdesk/internal/pkg/logger"
	"labdesk/internal/repository"
)

type Service struct {
	repo   *repository.NotificationRepository
	mailer Mailer
	hub    *Hub
}

func NewService(repo *repository.NotificationRepository, mailer Mailer, hub *Hub) *Service {
	return &Service{repo: repo, mailer: mailer, hub: hub}
}

func (s *Service) create(ctx context.Context, channel domain.NotificationChannel, patientID *int64, t domain.NotificationType, title, message string, data map[string]any) error {
	n := &domain.Notification{
		Channel:   channel,
		PatientID: patientID,
		Type:      t,
		Title:     title,
		Message:   message,
	}
	if err := s.repo.Create(ctx, n, data); err != nil {
		return err
	}

	if channel == domain.ChannelAdmin && s.hub != nil {
		s.hub.Broadcast(n)
	}
	return nil
}

func (s *Service) GetPatientNotifications(ctx context.Context, patientID int64, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByPatient(ctx, patientID, limit)
}

func (s *Service) GetAdminNotifications(ctx context.Context, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list, err := s.repo.ListAdmin(ctx, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, domain.ChannelAdmin)
	if err != nil {
		unread = 0
	}
	return list, unread, nil
}

func (s *Service) MarkRead(ctx context.Context, id int64) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *Service) MarkAllAdminRead(ctx context.Context) error {
	return s.repo.MarkAllAdminRead(ctx)
}

// NotifyBookingCreated lands on the admin channel only.
func (s *Service) NotifyBookingCreated(ctx context.Context, bookingID int64, bookingNumber string) error {
	return s.create(
		ctx,
		domain.ChannelAdmin,
		nil,
		domain.NotifBookingCreated,
		"New booking",
		fmt.Sprintf("Booking %s has been placed", bookingNumber),
		map[string]any{"booking_id": bookingID},
	)
}

// NotifyReportReady fires once per completing transition: in-app rows for the
// patient and the admin channel, plus an email when an address is known.
// Email failure is logged and dropped.
func (s *Service) NotifyReportReady(ctx context.Context, patientID int64, patientEmail, reference string, data map[string]any) error {
	if err := s.create(
		ctx,
		domain.ChannelPatient,
		&patientID,
		domain.NotifReportReady,
		"Your reports are ready",
		fmt.Sprintf("All test reports for %s have been finalized and are ready for download", reference),
		data,
	); err != nil {
		return err
	}

	if err := s.create(
		ctx,
		domain.ChannelAdmin,
		nil,
		domain.NotifReportReady,
		"Reports finalized",
		fmt.Sprintf("All reports for %s are finalized", reference),
		data,
	); err != nil {
		return err
	}

	if patientEmail != "" {
		if err := s.mailer.Send(
			patientEmail,
			"Your lab reports are ready",
			fmt.Sprintf("Dear patient,\n\nAll test reports for %s have been finalized. You can download them from your bookings page.\n\nThank you.", reference),
		); err != nil {
			logger.L().Warn("report-ready email failed",
				zap.String("to", patientEmail),
				zap.String("reference", reference),
				zap.Error(err),
			)
		}
	}

	return nil
}

// NotifyStatusChanged is fired on admin-driven booking status updates; the
// system-driven report_ready transition has its own richer notification.
func (s *Service) NotifyStatusChanged(ctx context.Context, patientID *int64, bookingNumber, status string) error {
	if patientID == nil {
		return nil
	}
	return s.create(
		ctx,
		domain.ChannelPatient,
		patientID,
		domain.NotifStatusChanged,
		"Booking status updated",
		fmt.Sprintf("Booking %s is now %s", bookingNumber, status),
		nil,
	)
}

func (s *Service) NotifyPaymentVerified(ctx context.Context, patientID *int64, patientEmail, bookingNumber string, bookingID int64) error {
	if err := s.create(
		ctx,
		domain.ChannelPatient,
		patientID,
		domain.NotifPaymentVerified,
		"Payment verified",
		fmt.Sprintf("Your payment for booking %s has been verified", bookingNumber),
		map[string]any{"booking_id": bookingID},
	); err != nil {
		return err
	}

	if patientEmail != "" {
		if err := s.mailer.Send(
			patientEmail,
			"Payment verified",
			fmt.Sprintf("Dear patient,\n\nYour payment for booking %s has been verified. Your reports will be available for download once finalized.\n\nThank you.", bookingNumber),
		); err != nil {
			logger.L().Warn("payment-verified email failed",
				zap.String("to", patientEmail),
				zap.String("booking_number", bookingNumber),
				zap.Error(err),
			)
		}
	}

	return nil
}
