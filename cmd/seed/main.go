package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"labdesk/internal/database"
	"labdesk/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "labdesk.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reports")
	db.Exec("DELETE FROM results")
	db.Exec("DELETE FROM test_report_statuses")
	db.Exec("DELETE FROM walkin_collections")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM prescriptions")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM health_packages")
	db.Exec("DELETE FROM lab_tests")
	db.Exec("DELETE FROM patients")
	db.Exec("DELETE FROM admins")

	log.Println("Creating admin...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.Admin{
		Name:         "Lab Admin",
		Email:        "admin@labdesk.local",
		PasswordHash: string(hash),
		Role:         "admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@labdesk.local / admin123")

	log.Println("Creating lab tests...")
	tests := []domain.LabTest{
		{Name: "Complete Blood Count", Price: 450, Category: "Hematology", SampleType: "Blood", IsActive: true},
		{Name: "Fasting Blood Sugar", Price: 200, Category: "Biochemistry", SampleType: "Blood", IsActive: true},
		{Name: "Lipid Profile", Price: 900, Category: "Biochemistry", SampleType: "Blood", IsActive: true},
		{Name: "Liver Function Test", Price: 1100, Category: "Biochemistry", SampleType: "Blood", IsActive: true},
		{Name: "Thyroid Profile (T3 T4 TSH)", Price: 1200, Category: "Hormones", SampleType: "Blood", IsActive: true},
		{Name: "HbA1c", Price: 650, Category: "Biochemistry", SampleType: "Blood", IsActive: true},
		{Name: "Urine Routine Examination", Price: 150, Category: "Clinical Pathology", SampleType: "Urine", IsActive: true},
		{Name: "Serum Creatinine", Price: 250, Category: "Biochemistry", SampleType: "Blood", IsActive: true},
	}
	for i := range tests {
		db.Create(&tests[i])
	}
	log.Printf("%d lab tests created", len(tests))

	log.Println("Creating health packages...")
	packages := []domain.HealthPackage{
		{
			Name:        "Basic Health Checkup",
			Price:       999,
			Description: "CBC, blood sugar and urine routine",
			TestIDs:     domain.Int64List{tests[0].ID, tests[1].ID, tests[6].ID},
			IsActive:    true,
		},
		{
			Name:        "Diabetes Care",
			Price:       1099,
			Description: "Fasting sugar, HbA1c and creatinine",
			TestIDs:     domain.Int64List{tests[1].ID, tests[5].ID, tests[7].ID},
			IsActive:    true,
		},
		{
			Name:        "Full Body Profile",
			Price:       3499,
			Description: "Complete metabolic and hormone screen",
			TestIDs:     domain.Int64List{tests[0].ID, tests[2].ID, tests[3].ID, tests[4].ID, tests[6].ID},
			IsActive:    true,
		},
	}
	for i := range packages {
		db.Create(&packages[i])
	}
	log.Printf("%d packages created", len(packages))

	log.Println("Creating lab settings...")
	db.Create(&domain.LabSettings{
		ID:           1,
		LabName:      "LabDesk Diagnostics",
		Address:      "12 Clinic Road",
		Phone:        "+1 555 0134",
		Email:        "reports@labdesk.local",
		ReportFooter: "This report is electronically generated and does not require a signature.",
	})

	log.Println("Seed complete")
}
