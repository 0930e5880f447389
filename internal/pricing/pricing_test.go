package pricing

import (
	"testing"

	"github.com/Skotchmaster/stylehub/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFromSubtotal(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		want     Summary
	}{
		{
			name:     "exactly at threshold ships free",
			subtotal: 1000,
			want:     Summary{Subtotal: 1000, Shipping: 0, Tax: 180, Total: 1180, FreeShippingRemaining: 0},
		},
		{
			name:     "just below threshold",
			subtotal: 999,
			want:     Summary{Subtotal: 999, Shipping: 99, Tax: 180, Total: 1278, FreeShippingRemaining: 1},
		},
		{
			name:     "above threshold ships free",
			subtotal: 1001,
			want:     Summary{Subtotal: 1001, Shipping: 0, Tax: 180, Total: 1181, FreeShippingRemaining: 0},
		},
		{
			name:     "empty cart",
			subtotal: 0,
			want:     Summary{Subtotal: 0, Shipping: 99, Tax: 0, Total: 99, FreeShippingRemaining: 1000},
		},
		{
			name:     "tax rounds half up",
			subtotal: 25,
			want:     Summary{Subtotal: 25, Shipping: 99, Tax: 5, Total: 129, FreeShippingRemaining: 975},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromSubtotal(tt.subtotal))
		})
	}
}

func TestCalculate_FromLineItems(t *testing.T) {
	items := []models.CartLineItem{
		{ProductID: 1, Price: 899, Quantity: 1},
		{ProductID: 2, Price: 2499, Quantity: 2},
	}

	got := Calculate(items)
	assert.Equal(t, 5897.0, got.Subtotal)
	assert.Equal(t, 0.0, got.Shipping)
	assert.Equal(t, 1061.0, got.Tax)
	assert.Equal(t, 6958.0, got.Total)
}

func TestCalculate_FractionalPrices(t *testing.T) {
	items := []models.CartLineItem{{Price: 0.1, Quantity: 3}}

	got := Calculate(items)
	assert.Equal(t, 0.3, got.Subtotal)
	assert.Equal(t, 0.0, got.Tax)
	assert.Equal(t, 99.3, got.Total)
}
