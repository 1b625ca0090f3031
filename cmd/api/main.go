package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"labdesk/internal/config"
	"labdesk/internal/database"
	"labdesk/internal/middleware"
	"labdesk/internal/modules/admin"
	"labdesk/internal/modules/booking"
	"labdesk/internal/modules/catalog"
	"labdesk/internal/modules/notification"
	"labdesk/internal/modules/payment"
	"labdesk/internal/modules/prescription"
	"labdesk/internal/modules/report"
	"labdesk/internal/modules/review"
	"labdesk/internal/modules/walkin"
	jwtsvc "labdesk/internal/pkg/jwt"
	"labdesk/internal/pkg/logger"
	"labdesk/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

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
	prescriptionRepo := repository.NewPrescriptionRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := notification.NewHub()
	defer hub.Close()

	mailer := notification.NewSMTPMailer(notification.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})

	notifService := notification.NewService(notifRepo, mailer, hub)
	notifHandler := notification.NewHandler(notifService, hub, j)

	var gateway payment.Gateway
	if cfg.MidtransServerKey != "" {
		gateway = payment.NewMidtransGateway(cfg.MidtransServerKey, cfg.AppEnv == "production")
	}
	paymentService := payment.NewService(bookingRepo, patientRepo, gateway, notifService)
	paymentHandler := payment.NewHandler(paymentService)

	bookingService := booking.NewService(
		bookingRepo,
		statusRepo,
		testRepo,
		packageRepo,
		patientRepo,
		paymentService,
		notifService,
	)
	bookingHandler := booking.NewHandler(bookingService)

	walkinService := walkin.NewService(walkinRepo, statusRepo, patientRepo, testRepo)
	walkinHandler := walkin.NewHandler(walkinService)

	reportService := report.NewService(
		bookingRepo,
		walkinRepo,
		statusRepo,
		resultRepo,
		reportRepo,
		patientRepo,
		testRepo,
		settingsRepo,
		notifService,
	)
	reportHandler := report.NewHandler(reportService)

	catalogService := catalog.NewService(testRepo, packageRepo, adRepo, settingsRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reviewService := review.NewService(reviewRepo)
	reviewHandler := review.NewHandler(reviewService)

	adminService := admin.NewService(adminRepo, j)
	adminHandler := admin.NewHandler(adminService)

	prescriptionService := prescription.NewService(prescriptionRepo, patientRepo)
	prescriptionHandler := prescription.NewHandler(prescriptionService)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.CORS(), middleware.RequestLogger())

	api := r.Group("/api")
	{
		// public, rate limited per IP
		public := api.Group("/")
		public.Use(middleware.RateLimit(5, 10))
		{
			adminHandler.RegisterPublicRoutes(public)
			catalogHandler.RegisterPublicRoutes(public)
			bookingHandler.RegisterPublicRoutes(public)
			reportHandler.RegisterPublicRoutes(public)
			reviewHandler.RegisterPublicRoutes(public)
			prescriptionHandler.RegisterPublicRoutes(public)
			notifHandler.RegisterPublicRoutes(public)
		}

		// The websocket stream authenticates via ?token= instead of the
		// Authorization header, so it sits outside the JWT middleware.
		notifHandler.RegisterStreamRoute(api.Group("/admin"))

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
			prescriptionHandler.RegisterAdminRoutes(protected)
			notifHandler.RegisterAdminRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
