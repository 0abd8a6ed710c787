package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Notification is a record of one customer email (delivery update, enquiry
// reply). Delivery is best-effort; the record keeps the outcome.
type Notification struct {
	ID        uuid.UUID          `json:"id"`
	Recipient string             `json:"recipient"`
	Subject   string             `json:"subject"`
	Content   string             `json:"content"`
	Status    NotificationStatus `json:"status"`
	Error     string             `json:"error,omitempty"`
	OrderID   *uuid.UUID         `json:"order_id,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type EmailNotificationRequest struct {
	Recipient string     `json:"recipient" validate:"required,email"`
	Subject   string     `json:"subject" validate:"required"`
	Content   string     `json:"content" validate:"required"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
}

type NotificationResponse struct {
	ID        uuid.UUID          `json:"id"`
	Recipient string             `json:"recipient"`
	Status    NotificationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}
