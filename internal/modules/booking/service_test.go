package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"labdesk/internal/domain"
	"labdesk/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && b.ID == 0 {
		b.ID = 101 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockStatusSeeder struct {
	mock.Mock
}

func (m *MockStatusSeeder) SeedPending(ctx context.Context, parent domain.ParentType, parentID int64, testIDs []int64) error {
	args := m.Called(ctx, parent, parentID, testIDs)
	return args.Error(0)
}

type MockLabTestRepository struct {
	mock.Mock
}

func (m *MockLabTestRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.LabTest, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LabTest), args.Error(1)
}

type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) GetByID(ctx context.Context, id int64) (*domain.HealthPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthPackage), args.Error(1)
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

func (m *MockPatientRepository) GetOrCreateByPhone(ctx context.Context, name, phone string) (*domain.Patient, error) {
	args := m.Called(ctx, name, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

type staticClassifier struct {
	status domain.PaymentStatus
}

func (c staticClassifier) Classify(ctx context.Context, method, gatewayTxnID string) domain.PaymentStatus {
	return c.status
}

type bookingFixture struct {
	bookings *MockBookingRepository
	statuses *MockStatusSeeder
	tests    *MockLabTestRepository
	packages *MockPackageRepository
	patients *MockPatientRepository
	svc      *Service
}

func newBookingFixture(paymentStatus domain.PaymentStatus) *bookingFixture {
	f := &bookingFixture{
		bookings: new(MockBookingRepository),
		statuses: new(MockStatusSeeder),
		tests:    new(MockLabTestRepository),
		packages: new(MockPackageRepository),
		patients: new(MockPatientRepository),
	}
	f.svc = NewService(
		f.bookings,
		f.statuses,
		f.tests,
		f.packages,
		f.patients,
		staticClassifier{status: paymentStatus},
		nil,
	)
	return f
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		Name:          "Asha Rahman",
		Phone:         "+8801711000001",
		TestIDs:       []int64{1, 2},
		SlotDate:      "2026-09-15",
		SlotTime:      "09:00",
		PaymentMethod: "pay_at_lab",
	}
}

func TestCreateBooking_IndividualTests(t *testing.T) {
	f := newBookingFixture(domain.PaymentPayAtLab)

	f.tests.On("GetByIDs", mock.Anything, []int64{1, 2}).Return([]domain.LabTest{
		{ID: 1, Price: 450},
		{ID: 2, Price: 200},
	}, nil)
	f.patients.On("GetOrCreateByPhone", mock.Anything, "Asha Rahman", "+8801711000001").
		Return(&domain.Patient{ID: 3}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.statuses.On("SeedPending", mock.Anything, domain.ParentBooking, int64(101), []int64{1, 2}).Return(nil)

	b, err := f.svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, float64(650), b.TotalAmount)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentPayAtLab, b.PaymentStatus)
	require.NotNil(t, b.PatientID)
	assert.Equal(t, int64(3), *b.PatientID)
	assert.True(t, len(b.BookingNumber) > 3 && b.BookingNumber[:3] == "LD-")
	f.statuses.AssertExpectations(t)
}

func TestCreateBooking_PackageExpandsTests(t *testing.T) {
	f := newBookingFixture(domain.PaymentPayAtLab)
	pkgID := int64(9)

	f.packages.On("GetByID", mock.Anything, pkgID).Return(&domain.HealthPackage{
		ID:      pkgID,
		Price:   999,
		TestIDs: domain.Int64List{1, 2, 3},
	}, nil)
	f.patients.On("GetOrCreateByPhone", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Patient{ID: 3}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.statuses.On("SeedPending", mock.Anything, domain.ParentBooking, int64(101), []int64{1, 2, 3}).Return(nil)

	req := validRequest()
	req.TestIDs = nil
	req.PackageID = &pkgID

	b, err := f.svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, float64(999), b.TotalAmount)
	assert.Equal(t, domain.Int64List{1, 2, 3}, b.TestIDs)
	require.NotNil(t, b.PackageID)
	assert.Equal(t, pkgID, *b.PackageID)
	// Package price wins over summed test prices.
	f.tests.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestCreateBooking_UnknownTest(t *testing.T) {
	f := newBookingFixture(domain.PaymentPayAtLab)

	f.tests.On("GetByIDs", mock.Anything, []int64{1, 2}).Return([]domain.LabTest{
		{ID: 1, Price: 450},
	}, nil)

	_, err := f.svc.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUnknownTest)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_BadSlotDate(t *testing.T) {
	f := newBookingFixture(domain.PaymentPayAtLab)

	req := validRequest()
	req.SlotDate = "15-09-2026"

	_, err := f.svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_GuestWithoutPhoneStaysUnlinked(t *testing.T) {
	f := newBookingFixture(domain.PaymentPayAtLab)

	f.tests.On("GetByIDs", mock.Anything, []int64{1, 2}).Return([]domain.LabTest{
		{ID: 1, Price: 450},
		{ID: 2, Price: 200},
	}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.statuses.On("SeedPending", mock.Anything, domain.ParentBooking, mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.Phone = ""

	b, err := f.svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	assert.Nil(t, b.PatientID)
	assert.Equal(t, "Asha Rahman", b.GuestName)
	f.patients.AssertNotCalled(t, "GetOrCreateByPhone", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_DuplicateTestIDsCollapse(t *testing.T) {
	f := newBookingFixture(domain.PaymentPayAtLab)

	f.tests.On("GetByIDs", mock.Anything, []int64{1, 1, 2}).Return([]domain.LabTest{
		{ID: 1, Price: 450},
		{ID: 2, Price: 200},
	}, nil)
	f.patients.On("GetOrCreateByPhone", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Patient{ID: 3}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.statuses.On("SeedPending", mock.Anything, domain.ParentBooking, int64(101), []int64{1, 2}).Return(nil)

	req := validRequest()
	req.TestIDs = []int64{1, 1, 2}

	b, err := f.svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.Int64List{1, 2}, b.TestIDs)
}

func TestUpdateStatus_ReportReadyIsSystemOnly(t *testing.T) {
	f := newBookingFixture(domain.PaymentPayAtLab)

	_, err := f.svc.UpdateStatus(context.Background(), 7, "report_ready")
	assert.ErrorIs(t, err, ErrBadTransition)
	f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_AllowedValue(t *testing.T) {
	f := newBookingFixture(domain.PaymentPayAtLab)

	f.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:     7,
		Status: domain.BookingPending,
	}, nil).Once()
	f.bookings.On("UpdateStatus", mock.Anything, int64(7), domain.BookingCollected).Return(nil)
	f.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:     7,
		Status: domain.BookingCollected,
	}, nil)

	b, err := f.svc.UpdateStatus(context.Background(), 7, "collected")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCollected, b.Status)
}

func TestGetByNumber_NotFound(t *testing.T) {
	f := newBookingFixture(domain.PaymentPayAtLab)

	f.bookings.On("GetByNumber", mock.Anything, "LD-NOPE").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.GetByNumber(context.Background(), "LD-NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}
