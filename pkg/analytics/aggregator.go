// Package analytics turns a raw order collection into per-order quantity
// summaries and collection-wide status counters.
package analytics

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/Sternrassler/order-analytics/pkg/order"
)

// DefaultDeliveryMarker identifies delivery-fee line items by display name.
const DefaultDeliveryMarker = "доставка"

// StatusSet is a closed set of upstream status values.
type StatusSet map[string]struct{}

// NewStatusSet builds a set from the given statuses.
func NewStatusSet(statuses ...string) StatusSet {
	s := make(StatusSet, len(statuses))
	for _, status := range statuses {
		s[status] = struct{}{}
	}
	return s
}

// Contains reports exact membership of status.
func (s StatusSet) Contains(status string) bool {
	_, ok := s[status]
	return ok
}

// StatusGroups are the named status sets behind the counters.
type StatusGroups struct {
	Approved  StatusSet
	Delivered StatusSet
}

// DefaultStatusGroups returns the RetailCRM status grouping.
func DefaultStatusGroups() StatusGroups {
	return StatusGroups{
		Approved:  NewStatusSet("payoff", "complectation", "delivery", "completed", "return"),
		Delivered: NewStatusSet("completed", "return"),
	}
}

// OrderSummary is the derived quantity breakdown of one order.
type OrderSummary struct {
	Number             json.RawMessage `json:"number"`
	Status             string          `json:"status"`
	QtyWithoutDelivery float64         `json:"qty_without_delivery"`
	TotalQty           float64         `json:"total_qty"`
}

// Analytics holds the collection-wide counters.
type Analytics struct {
	TotalOrders      int     `json:"total_orders"`
	ApprovedOrders   int     `json:"approved_orders"`
	DeliveredOrders  int     `json:"delivered_orders"`
	PercentApproved  float64 `json:"percent_approved"`
	PercentDelivered float64 `json:"percent_delivered"`
}

// Aggregator computes summaries and analytics. It holds no mutable state
// and is safe for concurrent use.
type Aggregator struct {
	groups StatusGroups
	marker string
}

// NewAggregator creates an aggregator. An empty marker falls back to
// DefaultDeliveryMarker.
func NewAggregator(groups StatusGroups, deliveryMarker string) *Aggregator {
	if deliveryMarker == "" {
		deliveryMarker = DefaultDeliveryMarker
	}
	return &Aggregator{
		groups: groups,
		marker: strings.ToLower(deliveryMarker),
	}
}

// Aggregate summarizes orders in input order and counts status groups.
// The input slice is only read.
func (a *Aggregator) Aggregate(orders []order.RawOrder) ([]OrderSummary, Analytics) {
	summaries := make([]OrderSummary, 0, len(orders))
	var stats Analytics

	for _, o := range orders {
		summaries = append(summaries, a.summarize(o))

		stats.TotalOrders++
		if a.groups.Approved.Contains(o.Status) {
			stats.ApprovedOrders++
		}
		if a.groups.Delivered.Contains(o.Status) {
			stats.DeliveredOrders++
		}
	}

	stats.PercentApproved = percent(stats.ApprovedOrders, stats.TotalOrders)
	stats.PercentDelivered = percent(stats.DeliveredOrders, stats.ApprovedOrders)

	return summaries, stats
}

func (a *Aggregator) summarize(o order.RawOrder) OrderSummary {
	s := OrderSummary{
		Number: o.Number,
		Status: o.Status,
	}
	for _, item := range o.Items {
		s.TotalQty += item.Quantity
		if !a.IsDelivery(item) {
			s.QtyWithoutDelivery += item.Quantity
		}
	}
	return s
}

// IsDelivery reports whether item is a delivery line, matched as a
// case-insensitive substring of the offer display name.
func (a *Aggregator) IsDelivery(item order.RawItem) bool {
	return strings.Contains(strings.ToLower(item.Offer.DisplayName), a.marker)
}

// percent returns part/whole*100 rounded to 2 decimals, or 0 when whole is 0.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*100*100) / 100
}
