package domain

import "time"

// WalkinCollection is a sample collection registered by lab staff on behalf of a
// referring doctor or clinic, independent of the online booking flow. It shares
// the booking's per-test report tracking but has no payment axis.
type WalkinCollection struct {
	ID               int64         `json:"id" gorm:"primaryKey;column:id"`
	CollectionNumber string        `json:"collection_number" gorm:"column:collection_number;uniqueIndex"`
	ReferredBy       string        `json:"referred_by" gorm:"column:referred_by"`
	PatientID        *int64        `json:"patient_id,omitempty" gorm:"column:patient_id"`
	TestIDs          Int64List     `json:"test_ids" gorm:"column:test_ids;type:text"`
	Status           BookingStatus `json:"status" gorm:"column:status"`
	Notes            string        `json:"notes,omitempty" gorm:"column:notes;type:text"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	Patient *Patient `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
}

func (WalkinCollection) TableName() string { return "walkin_collections" }
