package models

import (
	"time"

	"github.com/google/uuid"
)

type EnquiryStatus string

const (
	EnquiryStatusNew       EnquiryStatus = "new"
	EnquiryStatusContacted EnquiryStatus = "contacted"
	EnquiryStatusClosed    EnquiryStatus = "closed"
)

// Enquiry is a bulk-print request submitted from the storefront and worked by
// the back-office.
type Enquiry struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Message   string        `json:"message"`
	Quantity  int           `json:"quantity,omitempty"`
	Status    EnquiryStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type CreateEnquiryRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Message  string `json:"message" validate:"required,min=10,max=2000"`
	Quantity int    `json:"quantity,omitempty" validate:"omitempty,gt=0"`
}

type UpdateEnquiryStatusRequest struct {
	Status EnquiryStatus `json:"status" validate:"required,oneof=new contacted closed"`
}
