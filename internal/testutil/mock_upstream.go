// Package testutil provides testing utilities for the order analytics service.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/Sternrassler/order-analytics/pkg/order"
)

// MockPageResponse defines the behavior of the mock upstream for one page.
type MockPageResponse struct {
	StatusCode int
	// Body overrides Orders when set; used for malformed payloads.
	Body   string
	Orders []order.RawOrder
	Delay  time.Duration
}

// MockUpstream is a configurable mock of the paginated order API.
type MockUpstream struct {
	server *httptest.Server
	mu     sync.RWMutex
	pages  map[int]MockPageResponse

	// Tracking
	requestCount int
	pagesSeen    []int
	lastQuery    map[string]string
}

// NewMockUpstream creates a new mock upstream server.
// Pages that were not configured answer 200 with an empty order list.
func NewMockUpstream() *MockUpstream {
	mock := &MockUpstream{
		pages: make(map[int]MockPageResponse),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))

	return mock
}

// URL returns the mock order listing endpoint.
func (m *MockUpstream) URL() string {
	return m.server.URL + "/api/v5/orders"
}

// Close shuts down the mock server.
func (m *MockUpstream) Close() {
	m.server.Close()
}

// SetPage configures the response for a 1-based page index.
func (m *MockUpstream) SetPage(page int, resp MockPageResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[page] = resp
}

// SetOrders configures a successful page holding the given orders.
func (m *MockUpstream) SetOrders(page int, orders []order.RawOrder) {
	m.SetPage(page, MockPageResponse{StatusCode: http.StatusOK, Orders: orders})
}

// RequestCount returns the number of requests made to the server.
func (m *MockUpstream) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// PagesSeen returns the page indices requested, in arrival order.
func (m *MockUpstream) PagesSeen() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.pagesSeen...)
}

// LastQuery returns the query parameters of the most recent request.
func (m *MockUpstream) LastQuery() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastQuery
}

func (m *MockUpstream) handle(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	query := make(map[string]string)
	for key := range r.URL.Query() {
		query[key] = r.URL.Query().Get(key)
	}

	m.mu.Lock()
	m.requestCount++
	m.pagesSeen = append(m.pagesSeen, page)
	m.lastQuery = query
	resp, exists := m.pages[page]
	m.mu.Unlock()

	if !exists {
		resp = MockPageResponse{StatusCode: http.StatusOK}
	}

	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(resp.StatusCode)

	if resp.Body != "" {
		_, _ = w.Write([]byte(resp.Body))
		return
	}

	orders := resp.Orders
	if orders == nil {
		orders = []order.RawOrder{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "orders": orders})
}

// MakeOrders builds n orders with sequential numbers starting at first.
// Every order carries the given status and a single item of quantity 1.
func MakeOrders(first, n int, status string) []order.RawOrder {
	orders := make([]order.RawOrder, 0, n)
	for i := 0; i < n; i++ {
		orders = append(orders, order.RawOrder{
			Number: json.RawMessage(fmt.Sprintf("%q", strconv.Itoa(first+i))),
			Status: status,
			Items: []order.RawItem{
				{Quantity: 1, Offer: order.Offer{DisplayName: "Item"}},
			},
		})
	}
	return orders
}

// NewServerErrorResponse creates a 500 Internal Server Error page response.
func NewServerErrorResponse() MockPageResponse {
	return MockPageResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"success": false, "errorMsg": "Internal server error"}`,
	}
}

// NewMalformedResponse creates a 200 response with an unparseable body.
func NewMalformedResponse() MockPageResponse {
	return MockPageResponse{
		StatusCode: http.StatusOK,
		Body:       `{"orders": [`,
	}
}
