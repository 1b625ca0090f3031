package domain

import "time"

type Review struct {
	ID          int64     `json:"id" gorm:"primaryKey;column:id"`
	PatientName string    `json:"patient_name" gorm:"column:patient_name"`
	Rating      int       `json:"rating" gorm:"column:rating"`
	Comment     string    `json:"comment,omitempty" gorm:"column:comment;type:text"`
	Approved    bool      `json:"approved" gorm:"column:approved"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Review) TableName() string { return "reviews" }

type Advertisement struct {
	ID        int64     `json:"id" gorm:"primaryKey;column:id"`
	Title     string    `json:"title" gorm:"column:title"`
	ImageURL  string    `json:"image_url" gorm:"column:image_url"`
	LinkURL   string    `json:"link_url,omitempty" gorm:"column:link_url"`
	IsActive  bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Advertisement) TableName() string { return "advertisements" }

// LabSettings is a single-row table; the row with ID 1 is the lab profile
// printed on report headers and footers.
type LabSettings struct {
	ID           int64     `json:"id" gorm:"primaryKey;column:id"`
	LabName      string    `json:"lab_name" gorm:"column:lab_name"`
	Address      string    `json:"address,omitempty" gorm:"column:address;type:text"`
	Phone        string    `json:"phone,omitempty" gorm:"column:phone"`
	Email        string    `json:"email,omitempty" gorm:"column:email"`
	ReportFooter string    `json:"report_footer,omitempty" gorm:"column:report_footer;type:text"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (LabSettings) TableName() string { return "lab_settings" }

// Prescription stores upload metadata only; the file bytes live with the
// external upload service.
type Prescription struct {
	ID           int64     `json:"id" gorm:"primaryKey;column:id"`
	PatientID    *int64    `json:"patient_id,omitempty" gorm:"column:patient_id"`
	PatientName  string    `json:"patient_name,omitempty" gorm:"column:patient_name"`
	Phone        string    `json:"phone,omitempty" gorm:"column:phone"`
	FileURL      string    `json:"file_url" gorm:"column:file_url"`
	OriginalName string    `json:"original_name,omitempty" gorm:"column:original_name"`
	Note         string    `json:"note,omitempty" gorm:"column:note;type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Prescription) TableName() string { return "prescriptions" }
