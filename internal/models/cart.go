package models

import (
	"github.com/google/uuid"
)

// CartLineItem is one product-quantity pairing inside a cart, snapshotted with
// the pricing that applied when it was added. OriginalPrice is 0 when the
// product carries no discount. Customization holds free-form print data
// (uploaded image references, caption text).
type CartLineItem struct {
	ProductID     uuid.UUID      `json:"product_id"`
	Name          string         `json:"name"`
	Size          string         `json:"size,omitempty"`
	UnitPrice     float64        `json:"unit_price"`
	OriginalPrice float64        `json:"original_price,omitempty"`
	Quantity      int            `json:"quantity"`
	Customization map[string]any `json:"customization,omitempty"`
}

// LineTotal is the charged amount for this line.
func (li CartLineItem) LineTotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// LineSavings is the discount captured by this line, never negative.
func (li CartLineItem) LineSavings() float64 {
	if li.OriginalPrice <= li.UnitPrice {
		return 0
	}

	return (li.OriginalPrice - li.UnitPrice) * float64(li.Quantity)
}

type AddCartItemRequest struct {
	ProductID     uuid.UUID      `json:"product_id" validate:"required"`
	Size          string         `json:"size,omitempty"`
	Quantity      int            `json:"quantity" validate:"required,min=1"`
	Customization map[string]any `json:"customization,omitempty"`
}

type UpdateCartQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"min=0"`
}

// CartView is what the storefront renders: the ordered lines plus totals
// derived for the requested shipping method. Totals are recomputed on every
// read, never stored.
type CartView struct {
	Items          []CartLineItem `json:"items"`
	ItemCount      int            `json:"item_count"`
	ShippingMethod ShippingMethod `json:"shipping_method"`
	Subtotal       float64        `json:"subtotal"`
	Savings        float64        `json:"savings"`
	ShippingCost   float64        `json:"shipping_cost"`
	Total          float64        `json:"total"`
}
