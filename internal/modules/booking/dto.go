package booking

import "time"

type CreateBookingRequest struct {
	PatientID *int64  `json:"patient_id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	TestIDs   []int64 `json:"test_ids"`
	PackageID *int64  `json:"package_id"`

	SlotDate string `json:"slot_date" binding:"required"`
	SlotTime string `json:"slot_time" binding:"required"`

	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	PaymentMethod string `json:"payment_method" binding:"required"`
	GatewayTxnID  string `json:"gateway_txn_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingSummary struct {
	ID            int64     `json:"id"`
	BookingNumber string    `json:"booking_number"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   float64   `json:"total_amount"`
	SlotDate      time.Time `json:"slot_date"`
	SlotTime      string    `json:"slot_time"`
}
