package models

import "time"

// PaymentMethod is how the customer pays for an order
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentVenmo PaymentMethod = "venmo"
)

// Label returns the customer-facing description of the payment method
func (p PaymentMethod) Label() string {
	if p == PaymentVenmo {
		return "Venmo (pre-pay)"
	}
	return "Cash (at pickup)"
}

// CartItem is one line of a cart. Once an order is placed the embedded
// product is a frozen snapshot and no longer tracks the live catalog.
type CartItem struct {
	Product        Product  `json:"product"`
	Quantity       int      `json:"quantity"`
	SelectedBreads []string `json:"selectedBreads,omitempty"` // bread product ids, loaf boxes only
	Cut            bool     `json:"cut,omitempty"`            // sliced, adds a per-unit surcharge
	Review         string   `json:"review,omitempty"`
	Rating         *int     `json:"rating,omitempty"` // 1-5, set after pickup
}

// Order represents a placed order
type Order struct {
	ID            string        `json:"id"`
	Items         []CartItem    `json:"items"`
	CustomerName  string        `json:"customerName"`
	Phone         string        `json:"phone"`
	Total         float64       `json:"total"`                   // as submitted by the client
	ComputedTotal float64       `json:"computedTotal,omitempty"` // recomputed from item snapshots
	Date          time.Time     `json:"date"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PickupDate    string        `json:"pickupDate,omitempty"` // YYYY-MM-DD, bakery local date
	PickupTime    string        `json:"pickupTime,omitempty"`
	Completed     bool          `json:"completed"`
	CompletedDate *time.Time    `json:"completedDate,omitempty"`
	Cancelled     bool          `json:"cancelled"`
	CancelledDate *time.Time    `json:"cancelledDate,omitempty"`
	Review        string        `json:"review,omitempty"`
}

// HasPickup reports whether a pickup slot was scheduled
func (o Order) HasPickup() bool {
	return o.PickupDate != "" && o.PickupTime != ""
}

// TotalMismatch reports whether the submitted total differs from the
// server-side computation by at least one cent
func (o Order) TotalMismatch() bool {
	diff := o.Total - o.ComputedTotal
	return diff >= 0.005 || diff <= -0.005
}
