package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"labdesk/internal/database"
	"labdesk/internal/domain"
	"labdesk/internal/middleware"
	adminmod "labdesk/internal/modules/admin"
	"labdesk/internal/modules/booking"
	"labdesk/internal/modules/catalog"
	"labdesk/internal/modules/notification"
	"labdesk/internal/modules/payment"
	"labdesk/internal/modules/report"
	"labdesk/internal/modules/review"
	"labdesk/internal/modules/walkin"
	jwtsvc "labdesk/internal/pkg/jwt"
	"labdesk/internal/repository"
)

type Suite struct {
	router *gin.Engine
	db     *gorm.DB
	hub    *notification.Hub
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

var suiteSeq int

func setupSuite(t *testing.T) *Suite {
	t.Helper()

	suiteSeq++
	db, err := database.Connect(fmt.Sprintf("file:e2e%d?mode=memory&cache=shared", suiteSeq))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	adminRepo := repository.NewAdminRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	testRepo := repository.NewLabTestRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	walkinRepo := repository.NewWalkinRepository(db)
	statusRepo := repository.NewTestReportStatusRepository(db)
	resultRepo := repository.NewResultRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	adRepo := repository.NewAdvertisementRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	hub := notification.NewHub()
	t.Cleanup(hub.Close)

	// Empty host disables outbound mail.
	mailer := notification.NewSMTPMailer(notification.SMTPConfig{})
	notifService := notification.NewService(notifRepo, mailer, hub)
	notifHandler := notification.NewHandler(notifService, hub, j)

	paymentService := payment.NewService(bookingRepo, patientRepo, nil, notifService)
	paymentHandler := payment.NewHandler(paymentService)

	bookingService := booking.NewService(bookingRepo, statusRepo, testRepo, packageRepo, patientRepo, paymentService, notifService)
	bookingHandler := booking.NewHandler(bookingService)

	walkinService := walkin.NewService(walkinRepo, statusRepo, patientRepo, testRepo)
	walkinHandler := walkin.NewHandler(walkinService)

	reportService := report.NewService(bookingRepo, walkinRepo, statusRepo, resultRepo, reportRepo, patientRepo, testRepo, settingsRepo, notifService)
	reportHandler := report.NewHandler(reportService)

	catalogService := catalog.NewService(testRepo, packageRepo, adRepo, settingsRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reviewService := review.NewService(reviewRepo)
	reviewHandler := review.NewHandler(reviewService)

	adminService := adminmod.NewService(adminRepo, j)
	adminHandler := adminmod.NewHandler(adminService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		public := api.Group("/")
		{
			adminHandler.RegisterPublicRoutes(public)
			catalogHandler.RegisterPublicRoutes(public)
			bookingHandler.RegisterPublicRoutes(public)
			reportHandler.RegisterPublicRoutes(public)
			reviewHandler.RegisterPublicRoutes(public)
			notifHandler.RegisterPublicRoutes(public)
		}

		protected := api.Group("/admin")
		protected.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterAdminRoutes(protected)
			catalogHandler.RegisterAdminRoutes(protected)
			bookingHandler.RegisterAdminRoutes(protected)
			walkinHandler.RegisterAdminRoutes(protected)
			reportHandler.RegisterAdminRoutes(protected)
			paymentHandler.RegisterAdminRoutes(protected)
			reviewHandler.RegisterAdminRoutes(protected)
			notifHandler.RegisterAdminRoutes(protected)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.Admin{
		Name:         "Lab Admin",
		Email:        "admin@labdesk.test",
		PasswordHash: string(hash),
		Role:         "admin",
	}).Error)

	tests := []domain.LabTest{
		{Name: "Complete Blood Count", Price: 450, IsActive: true},
		{Name: "Fasting Blood Sugar", Price: 200, IsActive: true},
	}
	for i := range tests {
		require.NoError(t, db.Create(&tests[i]).Error)
	}

	require.NoError(t, db.Create(&domain.LabSettings{ID: 1, LabName: "LabDesk Diagnostics"}).Error)

	return &Suite{router: r, db: db, hub: hub}
}

func (s *Suite) request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return &resp
}

func (s *Suite) login(t *testing.T) string {
	t.Helper()
	w := s.request(t, "POST", "/api/admin/login", map[string]string{
		"email":    "admin@labdesk.test",
		"password": "admin123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := parse(t, w)
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *Suite) createBooking(t *testing.T, paymentMethod string) (int64, string) {
	t.Helper()
	w := s.request(t, "POST", "/api/bookings", map[string]interface{}{
		"name":           "Asha Rahman",
		"phone":          "+8801711000001",
		"test_ids":       []int64{1, 2},
		"slot_date":      "2026-09-15",
		"slot_time":      "09:00",
		"payment_method": paymentMethod,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := parse(t, w)
	b, _ := resp.Data["booking"].(map[string]interface{})
	require.NotNil(t, b)
	return int64(b["id"].(float64)), b["booking_number"].(string)
}

func (s *Suite) finalizeTest(t *testing.T, token string, bookingID, testID int64) {
	t.Helper()
	w := s.request(t, "POST",
		fmt.Sprintf("/api/admin/bookings/%d/tests/%d/report", bookingID, testID),
		map[string]interface{}{
			"technician": "R. Haque",
			"parameterResults": []map[string]interface{}{
				{"name": "Hemoglobin", "value": "13.5", "unit": "g/dL", "normalRange": "12-16"},
			},
			"finalize": true,
		}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func (s *Suite) reportToken(t *testing.T, bookingID int64) string {
	t.Helper()
	var rep domain.Report
	require.NoError(t, s.db.Where("booking_id = ?", bookingID).First(&rep).Error)
	return rep.SecureToken
}

func TestAdminAuth(t *testing.T) {
	s := setupSuite(t)

	t.Run("wrong password is rejected", func(t *testing.T) {
		w := s.request(t, "POST", "/api/admin/login", map[string]string{
			"email":    "admin@labdesk.test",
			"password": "wrong",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", parse(t, w).Error.Code)
	})

	t.Run("admin routes require a token", func(t *testing.T) {
		w := s.request(t, "GET", "/api/admin/bookings", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("login then access admin route", func(t *testing.T) {
		token := s.login(t)
		w := s.request(t, "GET", "/api/admin/bookings", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestBookingToReportFlow(t *testing.T) {
	s := setupSuite(t)
	token := s.login(t)

	bookingID, number := s.createBooking(t, "pay_at_lab")

	t.Run("public status check", func(t *testing.T) {
		w := s.request(t, "GET", "/api/bookings/"+number, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		b := parse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "pending", b["status"])
		assert.Equal(t, "pay_at_lab", b["payment_status"])
	})

	t.Run("finalizing one of two tests keeps the booking open", func(t *testing.T) {
		s.finalizeTest(t, token, bookingID, 1)

		w := s.request(t, "GET", fmt.Sprintf("/api/admin/bookings/%d/report-details", bookingID), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		progress := parse(t, w).Data["progress"].(map[string]interface{})
		assert.Equal(t, float64(1), progress["finalized"])
		assert.Equal(t, float64(1), progress["pending"])
	})

	t.Run("finalizing the last test flips report_ready", func(t *testing.T) {
		s.finalizeTest(t, token, bookingID, 2)

		w := s.request(t, "GET", "/api/bookings/"+number, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		b := parse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "report_ready", b["status"])
	})

	t.Run("refinalizing is rejected", func(t *testing.T) {
		w := s.request(t, "POST",
			fmt.Sprintf("/api/admin/bookings/%d/tests/1/report", bookingID),
			map[string]interface{}{
				"parameterResults": []map[string]interface{}{
					{"name": "Hemoglobin", "value": "14.0"},
				},
				"finalize": true,
			}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("cleared payment downloads the report", func(t *testing.T) {
		w := s.request(t, "GET", "/api/reports/download/"+s.reportToken(t, bookingID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "Asha Rahman")
	})
}

func TestPaymentGateFlow(t *testing.T) {
	s := setupSuite(t)
	token := s.login(t)

	// No gateway configured, so an online payment lands in paid_unverified.
	bookingID, _ := s.createBooking(t, "online")
	s.finalizeTest(t, token, bookingID, 1)
	s.finalizeTest(t, token, bookingID, 2)

	downloadPath := "/api/reports/download/" + s.reportToken(t, bookingID)

	t.Run("unverified payment blocks download", func(t *testing.T) {
		w := s.request(t, "GET", downloadPath, nil, "")
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "PAYMENT_REQUIRED", parse(t, w).Error.Code)
	})

	t.Run("admin verifies the payment", func(t *testing.T) {
		w := s.request(t, "PATCH", fmt.Sprintf("/api/admin/bookings/%d/verify-payment", bookingID), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		b := parse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "verified", b["payment_status"])
	})

	t.Run("second verify reports the state conflict", func(t *testing.T) {
		w := s.request(t, "PATCH", fmt.Sprintf("/api/admin/bookings/%d/verify-payment", bookingID), nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "PAYMENT_STATE", parse(t, w).Error.Code)
	})

	t.Run("same token now downloads", func(t *testing.T) {
		w := s.request(t, "GET", downloadPath, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown token is 404", func(t *testing.T) {
		w := s.request(t, "GET", "/api/reports/download/deadbeef", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestWalkinFlow(t *testing.T) {
	s := setupSuite(t)
	token := s.login(t)

	var collectionID int64
	t.Run("staff registers a collection", func(t *testing.T) {
		w := s.request(t, "POST", "/api/admin/walkin-collections", map[string]interface{}{
			"referred_by":   "Dr. Karim",
			"patient_name":  "Rafiq Islam",
			"patient_phone": "+8801711000002",
			"test_ids":      []int64{1},
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		c := parse(t, w).Data["collection"].(map[string]interface{})
		collectionID = int64(c["id"].(float64))
		assert.Equal(t, "collected", c["status"])
	})

	t.Run("finalizing the only test makes it report_ready", func(t *testing.T) {
		w := s.request(t, "POST",
			fmt.Sprintf("/api/admin/walkin-collections/%d/tests/1/report", collectionID),
			map[string]interface{}{
				"parameterResults": []map[string]interface{}{
					{"name": "Hemoglobin", "value": "11.2", "normalRange": "12-16"},
				},
				"finalize": true,
			}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var wc domain.WalkinCollection
		require.NoError(t, s.db.First(&wc, collectionID).Error)
		assert.Equal(t, domain.BookingReportReady, wc.Status)
	})

	t.Run("walk-in report downloads without a payment gate", func(t *testing.T) {
		var rep domain.Report
		require.NoError(t, s.db.Where("booking_id IS NULL").First(&rep).Error)

		w := s.request(t, "GET", "/api/reports/download/"+rep.SecureToken, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestReviewModeration(t *testing.T) {
	s := setupSuite(t)
	token := s.login(t)

	w := s.request(t, "POST", "/api/reviews", map[string]interface{}{
		"patient_name": "Asha Rahman",
		"rating":       5,
		"comment":      "Fast report delivery",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("unapproved review is hidden from the public list", func(t *testing.T) {
		w := s.request(t, "GET", "/api/reviews", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		reviews, _ := parse(t, w).Data["reviews"].([]interface{})
		assert.Empty(t, reviews)
	})

	t.Run("approval publishes it", func(t *testing.T) {
		var rv domain.Review
		require.NoError(t, s.db.First(&rv).Error)

		w := s.request(t, "PATCH", fmt.Sprintf("/api/admin/reviews/%d/approve", rv.ID), nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		w = s.request(t, "GET", "/api/reviews", nil, "")
		reviews := parse(t, w).Data["reviews"].([]interface{})
		assert.Len(t, reviews, 1)
	})
}
