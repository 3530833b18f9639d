package server

import (
	"github.com/Sternrassler/order-analytics/pkg/analytics"
)

// truncatedHeader is set on /orders responses built from a partial load.
const truncatedHeader = "X-Orders-Truncated"

type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

type ordersResponse struct {
	Orders    []analytics.OrderSummary `json:"orders"`
	Analytics analytics.Analytics      `json:"analytics"`
	Timestamp string                   `json:"timestamp"`
}

type healthResponse struct {
	Status      string `json:"status"`
	CacheFilled bool   `json:"cache_filled"`
}
