package models

import (
	"time"

	"github.com/google/uuid"
)

// SizeOption is one physical print size of a multi-size product, carrying its
// own price and optional pre-discount price.
type SizeOption struct {
	Size          string  `json:"size" validate:"required"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	OriginalPrice float64 `json:"original_price,omitempty" validate:"omitempty,gt=0"`
}

// Product is either single-size (Price/OriginalPrice apply) or multi-size
// (MultiSize is set and SizeOptions is the ordered list of variants). The two
// shapes share one struct; PriceForSize is the only pricing accessor callers
// should use.
type Product struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Category      string       `json:"category"`
	Price         float64      `json:"price"`
	OriginalPrice float64      `json:"original_price,omitempty"`
	Size          string       `json:"size,omitempty"`
	MultiSize     bool         `json:"multi_size"`
	SizeOptions   []SizeOption `json:"size_options,omitempty"`
	Images        []string     `json:"images,omitempty"`
	InStock       bool         `json:"in_stock"`
	Featured      bool         `json:"featured"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// PriceForSize resolves the effective unit price and the original price (0 when
// the product has no discount) for the given size selection. For multi-size
// products an empty size selects the first option; an unknown size reports
// ok=false. Single-size products ignore the size argument.
func (p *Product) PriceForSize(size string) (unit, original float64, ok bool) {
	if !p.MultiSize {
		return p.Price, p.OriginalPrice, true
	}

	if len(p.SizeOptions) == 0 {
		return 0, 0, false
	}

	if size == "" {
		opt := p.SizeOptions[0]
		return opt.Price, opt.OriginalPrice, true
	}

	for _, opt := range p.SizeOptions {
		if opt.Size == size {
			return opt.Price, opt.OriginalPrice, true
		}
	}

	return 0, 0, false
}

type CreateProductRequest struct {
	Name          string       `json:"name" validate:"required,min=3,max=200"`
	Description   string       `json:"description,omitempty"`
	Category      string       `json:"category" validate:"required"`
	Price         float64      `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice float64      `json:"original_price,omitempty" validate:"omitempty,gt=0"`
	Size          string       `json:"size,omitempty"`
	MultiSize     bool         `json:"multi_size"`
	SizeOptions   []SizeOption `json:"size_options,omitempty" validate:"omitempty,min=1,dive"`
	Images        []string     `json:"images,omitempty"`
	InStock       *bool        `json:"in_stock,omitempty"`
	Featured      bool         `json:"featured"`
}

type UpdateProductRequest struct {
	Name          *string      `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description   *string      `json:"description,omitempty"`
	Category      *string      `json:"category,omitempty"`
	Price         *float64     `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice *float64     `json:"original_price,omitempty" validate:"omitempty,gt=0"`
	Size          *string      `json:"size,omitempty"`
	SizeOptions   []SizeOption `json:"size_options,omitempty" validate:"omitempty,dive"`
	Images        []string     `json:"images,omitempty"`
	InStock       *bool        `json:"in_stock,omitempty"`
	Featured      *bool        `json:"featured,omitempty"`
}
