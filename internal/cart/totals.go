package cart

import (
	"github.com/printhaus/printshop-platform/internal/models"
)

// Totals are the derived money figures for a set of line items. They are
// recomputed from scratch on every call; nothing here caches across
// mutations.
type Totals struct {
	Subtotal     float64
	Savings      float64
	ShippingCost float64
	Total        float64
}

// ComputeTotals derives subtotal, aggregate savings, shipping cost and grand
// total for the given lines and shipping method. Standard shipping is free;
// express charges the flat expressFee. Savings only count lines whose original
// price exceeds the effective price.
func ComputeTotals(items []models.CartLineItem, method models.ShippingMethod, expressFee float64) Totals {
	var t Totals

	for _, li := range items {
		t.Subtotal += li.LineTotal()
		t.Savings += li.LineSavings()
	}

	if method == models.ShippingExpress {
		t.ShippingCost = expressFee
	}

	t.Total = t.Subtotal + t.ShippingCost

	return t
}
