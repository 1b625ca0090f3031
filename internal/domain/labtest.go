package domain

import "time"

// LabTest is one orderable diagnostic test from the catalog.
type LabTest struct {
	ID          int64     `json:"id" gorm:"primaryKey;column:id"`
	Name        string    `json:"name" gorm:"column:name"`
	Price       float64   `json:"price" gorm:"column:price"`
	Category    string    `json:"category,omitempty" gorm:"column:category"`
	Description string    `json:"description,omitempty" gorm:"column:description;type:text"`
	SampleType  string    `json:"sample_type,omitempty" gorm:"column:sample_type"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (LabTest) TableName() string { return "lab_tests" }

// HealthPackage bundles several tests at a package price.
type HealthPackage struct {
	ID          int64     `json:"id" gorm:"primaryKey;column:id"`
	Name        string    `json:"name" gorm:"column:name"`
	Price       float64   `json:"price" gorm:"column:price"`
	Description string    `json:"description,omitempty" gorm:"column:description;type:text"`
	TestIDs     Int64List `json:"test_ids" gorm:"column:test_ids;type:text"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (HealthPackage) TableName() string { return "health_packages" }
