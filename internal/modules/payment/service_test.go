package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"labdesk/internal/domain"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) MarkPaymentVerified(ctx context.Context, id int64, verifiedBy string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, verifiedBy, at)
	return args.Bool(0), args.Error(1)
}

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) VerifyTransaction(ctx context.Context, txnID string) (bool, error) {
	args := m.Called(ctx, txnID)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
	done chan struct{}
}

func newMockNotifier() *MockNotifier {
	return &MockNotifier{done: make(chan struct{}, 1)}
}

func (m *MockNotifier) NotifyPaymentVerified(ctx context.Context, patientID *int64, patientEmail, bookingNumber string, bookingID int64) error {
	args := m.Called(ctx, patientID, patientEmail, bookingNumber, bookingID)
	m.done <- struct{}{}
	return args.Error(0)
}

func TestClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("cash on delivery passes through", func(t *testing.T) {
		svc := NewService(nil, nil, nil, nil)
		got := svc.Classify(ctx, "cash_on_delivery", "")
		assert.Equal(t, domain.PaymentCashOnDelivery, got)
	})

	t.Run("pay at lab passes through", func(t *testing.T) {
		svc := NewService(nil, nil, nil, nil)
		got := svc.Classify(ctx, "pay_at_lab", "")
		assert.Equal(t, domain.PaymentPayAtLab, got)
	})

	t.Run("settled gateway transaction is verified", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("VerifyTransaction", ctx, "txn-1").Return(true, nil)

		svc := NewService(nil, nil, gw, nil)
		got := svc.Classify(ctx, "online", "txn-1")
		assert.Equal(t, domain.PaymentVerified, got)
		gw.AssertExpectations(t)
	})

	t.Run("unsettled transaction awaits manual review", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("VerifyTransaction", ctx, "txn-2").Return(false, nil)

		svc := NewService(nil, nil, gw, nil)
		got := svc.Classify(ctx, "online", "txn-2")
		assert.Equal(t, domain.PaymentPaidUnverified, got)
	})

	t.Run("gateway error falls back to manual review", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("VerifyTransaction", ctx, "txn-3").Return(false, errors.New("gateway down"))

		svc := NewService(nil, nil, gw, nil)
		got := svc.Classify(ctx, "online", "txn-3")
		assert.Equal(t, domain.PaymentPaidUnverified, got)
	})

	t.Run("no gateway configured means manual review", func(t *testing.T) {
		svc := NewService(nil, nil, nil, nil)
		got := svc.Classify(ctx, "online", "txn-4")
		assert.Equal(t, domain.PaymentPaidUnverified, got)
	})
}

func TestVerifyBookingPayment_NotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(bookings, nil, nil, nil)
	_, err := svc.VerifyBookingPayment(context.Background(), 42, "Lab Admin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyBookingPayment_WrongState(t *testing.T) {
	for _, status := range []domain.PaymentStatus{
		domain.PaymentVerified,
		domain.PaymentCashOnDelivery,
		domain.PaymentPayAtLab,
	} {
		bookings := new(MockBookingRepository)
		bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
			ID:            7,
			PaymentStatus: status,
		}, nil)

		svc := NewService(bookings, nil, nil, nil)
		_, err := svc.VerifyBookingPayment(context.Background(), 7, "Lab Admin")
		assert.ErrorIs(t, err, ErrPaymentState, "status %s", status)
		bookings.AssertNotCalled(t, "MarkPaymentVerified", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestVerifyBookingPayment_LostRace(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:            7,
		PaymentStatus: domain.PaymentPaidUnverified,
	}, nil)
	bookings.On("MarkPaymentVerified", mock.Anything, int64(7), "Lab Admin", mock.Anything).Return(false, nil)

	svc := NewService(bookings, nil, nil, nil)
	_, err := svc.VerifyBookingPayment(context.Background(), 7, "Lab Admin")
	assert.ErrorIs(t, err, ErrPaymentState)
}

func TestVerifyBookingPayment_Success(t *testing.T) {
	patientID := int64(3)

	pending := &domain.Booking{
		ID:            7,
		BookingNumber: "LD-ABCD1234",
		PatientID:     &patientID,
		PaymentStatus: domain.PaymentPaidUnverified,
	}
	verified := &domain.Booking{
		ID:            7,
		BookingNumber: "LD-ABCD1234",
		PatientID:     &patientID,
		PaymentStatus: domain.PaymentVerified,
	}

	bookings := new(MockBookingRepository)
	bookings.On("GetByID", mock.Anything, int64(7)).Return(pending, nil).Once()
	bookings.On("MarkPaymentVerified", mock.Anything, int64(7), "Lab Admin", mock.Anything).Return(true, nil)
	bookings.On("GetByID", mock.Anything, int64(7)).Return(verified, nil)

	patients := new(MockPatientRepository)
	patients.On("GetByID", mock.Anything, patientID).Return(&domain.Patient{
		ID:    patientID,
		Email: "asha@example.com",
	}, nil)

	notifs := newMockNotifier()
	notifs.On("NotifyPaymentVerified", mock.Anything, &patientID, "asha@example.com", "LD-ABCD1234", int64(7)).Return(nil)

	svc := NewService(bookings, patients, nil, notifs)
	b, err := svc.VerifyBookingPayment(context.Background(), 7, "Lab Admin")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentVerified, b.PaymentStatus)

	select {
	case <-notifs.done:
	case <-time.After(2 * time.Second):
		t.Fatal("payment-verified notification never fired")
	}
	bookings.AssertExpectations(t)
	notifs.AssertExpectations(t)
}
