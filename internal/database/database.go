package database

import (
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"labdesk/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	// Anything else is a sqlite path; the modernc driver keeps local dev and
	// tests cgo-free.
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Migrate keeps the schema current. Order matters only for readability;
// AutoMigrate never drops columns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Patient{},
		&domain.LabTest{},
		&domain.HealthPackage{},
		&domain.Booking{},
		&domain.WalkinCollection{},
		&domain.TestReportStatus{},
		&domain.Result{},
		&domain.Report{},
		&domain.Notification{},
		&domain.Admin{},
		&domain.Review{},
		&domain.Advertisement{},
		&domain.LabSettings{},
		&domain.Prescription{},
	)
}
