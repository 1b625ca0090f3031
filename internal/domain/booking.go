package domain

import "time"

type BookingStatus string

const (
	BookingPending     BookingStatus = "pending"
	BookingCollected   BookingStatus = "collected"
	BookingProcessing  BookingStatus = "processing"
	BookingReportReady BookingStatus = "report_ready"
	BookingDelivered   BookingStatus = "delivered"
	BookingCancelled   BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentVerified       PaymentStatus = "verified"
	PaymentCashOnDelivery PaymentStatus = "cash_on_delivery"
	PaymentPayAtLab       PaymentStatus = "pay_at_lab"
	PaymentPaidUnverified PaymentStatus = "paid_unverified"
)

// PaymentClears reports whether a payment status releases report downloads.
func (s PaymentStatus) PaymentClears() bool {
	switch s {
	case PaymentVerified, PaymentCashOnDelivery, PaymentPayAtLab:
		return true
	}
	return false
}

type Booking struct {
	ID            int64     `json:"id" gorm:"primaryKey;column:id"`
	BookingNumber string    `json:"booking_number" gorm:"column:booking_number;uniqueIndex"`
	PatientID     *int64    `json:"patient_id,omitempty" gorm:"column:patient_id"`
	GuestName     string    `json:"guest_name,omitempty" gorm:"column:guest_name"`
	GuestPhone    string    `json:"guest_phone,omitempty" gorm:"column:guest_phone"`
	TestIDs       Int64List `json:"test_ids" gorm:"column:test_ids;type:text"`
	PackageID     *int64    `json:"package_id,omitempty" gorm:"column:package_id"`

	SlotDate time.Time `json:"slot_date" gorm:"column:slot_date"`
	SlotTime string    `json:"slot_time" gorm:"column:slot_time"`

	// Home collection, optional.
	Address   string   `json:"address,omitempty" gorm:"column:address;type:text"`
	Latitude  *float64 `json:"latitude,omitempty" gorm:"column:latitude"`
	Longitude *float64 `json:"longitude,omitempty" gorm:"column:longitude"`

	Status BookingStatus `json:"status" gorm:"column:status"`

	// Payment axis, independent of Status.
	PaymentMethod     string        `json:"payment_method" gorm:"column:payment_method"`
	PaymentStatus     PaymentStatus `json:"payment_status" gorm:"column:payment_status"`
	GatewayTxnID      string        `json:"gateway_txn_id,omitempty" gorm:"column:gateway_txn_id"`
	PaymentVerifiedAt *time.Time    `json:"payment_verified_at,omitempty" gorm:"column:payment_verified_at"`
	PaymentVerifiedBy string        `json:"payment_verified_by,omitempty" gorm:"column:payment_verified_by"`

	TotalAmount float64   `json:"total_amount" gorm:"column:total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Patient *Patient `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
}

func (Booking) TableName() string { return "bookings" }
