package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductBreadSelectionSize(t *testing.T) {
	tests := []struct {
		name     string
		loafType LoafType
		want     int
	}{
		{"mini loaf box", LoafTypeMini, 4},
		{"half loaf box", LoafTypeHalf, 2},
		{"regular product", "", 0},
		{"unknown designator", LoafType("giant"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{ID: "p1", LoafType: tt.loafType}
			assert.Equal(t, tt.want, p.BreadSelectionSize())
			assert.Equal(t, tt.want > 0, p.IsLoafBox())
		})
	}
}

func TestValidLoafType(t *testing.T) {
	assert.True(t, ValidLoafType(""))
	assert.True(t, ValidLoafType(LoafTypeMini))
	assert.True(t, ValidLoafType(LoafTypeHalf))
	assert.False(t, ValidLoafType("quarter"))
}

func TestPaymentMethodLabel(t *testing.T) {
	assert.Equal(t, "Venmo (pre-pay)", PaymentVenmo.Label())
	assert.Equal(t, "Cash (at pickup)", PaymentCash.Label())
	assert.Equal(t, "Cash (at pickup)", PaymentMethod("").Label())
}

func TestOrderHasPickup(t *testing.T) {
	order := Order{ID: "ABC123", Date: time.Now()}
	assert.False(t, order.HasPickup())

	order.PickupDate = "2025-12-20"
	assert.False(t, order.HasPickup(), "pickup needs both date and time")

	order.PickupTime = "12:00 PM"
	assert.True(t, order.HasPickup())
}

func TestOrderTotalMismatch(t *testing.T) {
	order := Order{Total: 23.50, ComputedTotal: 23.50}
	assert.False(t, order.TotalMismatch())

	order.ComputedTotal = 23.499
	assert.False(t, order.TotalMismatch(), "sub-cent float noise is not a mismatch")

	order.ComputedTotal = 22.50
	assert.True(t, order.TotalMismatch())
}
