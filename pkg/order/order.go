// Package order defines the upstream order payload as returned by the
// order-management API.
package order

import (
	"encoding/json"
)

// RawOrder is a single order record from the upstream API.
// Only the fields used by analytics are decoded; everything else is ignored.
type RawOrder struct {
	// Number is the order label exactly as sent upstream (string or integer).
	Number json.RawMessage `json:"number,omitempty"`

	// Status is drawn from an externally defined, open-ended vocabulary.
	Status string `json:"status"`

	Items []RawItem `json:"items"`
}

// RawItem is a line entry within an order.
type RawItem struct {
	// Quantity decodes to 0 when absent.
	Quantity float64 `json:"quantity"`

	Offer Offer `json:"offer"`
}

// Offer describes the product behind an item.
type Offer struct {
	DisplayName string `json:"displayName"`
}

// Page is the upstream response envelope for one page of orders.
type Page struct {
	Orders []RawOrder `json:"orders"`
}

// NumberString returns the order number as plain text, without JSON quoting.
// Used for log fields.
func (o RawOrder) NumberString() string {
	if len(o.Number) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(o.Number, &s); err == nil {
		return s
	}
	return string(o.Number)
}
