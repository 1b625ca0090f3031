package domain

import (
	"encoding/json"
	"time"
)

type NotificationType string

const (
	NotifBookingCreated  NotificationType = "booking_created"
	NotifReportReady     NotificationType = "report_ready"
	NotifPaymentVerified NotificationType = "payment_verified"
	NotifStatusChanged   NotificationType = "status_changed"
)

type NotificationChannel string

const (
	ChannelPatient NotificationChannel = "patient"
	ChannelAdmin   NotificationChannel = "admin"
)

type Notification struct {
	ID        int64               `json:"id" gorm:"primaryKey;column:id"`
	Channel   NotificationChannel `json:"channel" gorm:"column:channel;index:idx_notifications_channel_read"`
	PatientID *int64              `json:"patient_id,omitempty" gorm:"column:patient_id;index"`
	Type      NotificationType    `json:"type" gorm:"column:type"`
	Title     string              `json:"title" gorm:"column:title"`
	Message   string              `json:"message" gorm:"column:message;type:text"`
	Data      json.RawMessage     `json:"data,omitempty" gorm:"column:data;type:text"`
	IsRead    bool                `json:"is_read" gorm:"column:is_read;index:idx_notifications_channel_read"`
	CreatedAt time.Time           `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
