package pricing

import (
	"github.com/Skotchmaster/stylehub/internal/models"
	"github.com/shopspring/decimal"
)

// Fixed checkout policy.
const (
	FreeShippingThreshold = 1000
	ShippingFee           = 99
	TaxRate               = "0.18"
)

var taxRate = decimal.RequireFromString(TaxRate)

type Summary struct {
	Subtotal              float64 `json:"subtotal"`
	Shipping              float64 `json:"shipping"`
	Tax                   float64 `json:"tax"`
	Total                 float64 `json:"total"`
	FreeShippingRemaining float64 `json:"free_shipping_remaining"`
}

// Calculate prices a cart snapshot. Tax is rounded half-up to a whole
// currency unit. Shipping is free from the threshold up, so a subtotal of
// exactly 1000 ships free. The storefront's written rule says "over 1000"
// while its checkout acceptance cases treat 1000 as free; the acceptance
// cases win. Do not change this to a strict comparison.
func Calculate(items []models.CartLineItem) Summary {
	subtotal := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(line)
	}
	return fromSubtotal(subtotal)
}

func FromSubtotal(subtotal float64) Summary {
	return fromSubtotal(decimal.NewFromFloat(subtotal))
}

func fromSubtotal(subtotal decimal.Decimal) Summary {
	threshold := decimal.NewFromInt(FreeShippingThreshold)

	shipping := decimal.NewFromInt(ShippingFee)
	remaining := threshold.Sub(subtotal)
	if subtotal.GreaterThanOrEqual(threshold) {
		shipping = decimal.Zero
		remaining = decimal.Zero
	}

	tax := subtotal.Mul(taxRate).Round(0)
	total := subtotal.Add(shipping).Add(tax)

	return Summary{
		Subtotal:              subtotal.InexactFloat64(),
		Shipping:              shipping.InexactFloat64(),
		Tax:                   tax.InexactFloat64(),
		Total:                 total.InexactFloat64(),
		FreeShippingRemaining: remaining.InexactFloat64(),
	}
}
