package models

import (
	"time"

	"github.com/google/uuid"
)

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required,len=6,numeric"`
}

// Order is the checkout-time snapshot: line items copied from the cart,
// customer contact, and the totals computed at submission. It is created once
// with status pending and afterwards mutated only through the admin
// status/delivery paths.
type Order struct {
	ID              uuid.UUID      `json:"id"`
	CustomerID      uuid.UUID      `json:"customer_id"`
	CustomerName    string         `json:"customer_name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	ShippingAddress *Address       `json:"shipping_address"`
	Items           []CartLineItem `json:"items"`
	Subtotal        float64        `json:"subtotal"`
	Savings         float64        `json:"savings,omitempty"`
	ShippingMethod  ShippingMethod `json:"shipping_method"`
	ShippingCost    float64        `json:"shipping_cost"`
	Total           float64        `json:"total"`
	Status          OrderStatus    `json:"status"`
	DeliveryLink    string         `json:"delivery_link,omitempty"`
	TrackingNumber  string         `json:"tracking_number,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type CheckoutRequest struct {
	Phone           string         `json:"phone" validate:"required,min=10,max=15"`
	ShippingAddress Address        `json:"shipping_address" validate:"required"`
	ShippingMethod  ShippingMethod `json:"shipping_method" validate:"required,oneof=standard express"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

type UpdateDeliveryInfoRequest struct {
	DeliveryLink   string `json:"delivery_link,omitempty" validate:"omitempty,url"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}
