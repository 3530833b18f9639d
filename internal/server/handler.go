package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Sternrassler/order-analytics/pkg/analytics"
	"github.com/Sternrassler/order-analytics/pkg/auth"
	"github.com/Sternrassler/order-analytics/pkg/order"
	"github.com/Sternrassler/order-analytics/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// OrderSource provides the (cached) order collection.
type OrderSource interface {
	Get(ctx context.Context) pagination.LoadResult
	Filled() bool
}

// Aggregator turns orders into summaries and analytics.
type Aggregator interface {
	Aggregate(orders []order.RawOrder) ([]analytics.OrderSummary, analytics.Analytics)
}

// AuthHandler serves the operator login.
type AuthHandler struct {
	authenticator auth.Authenticator
	logger        zerolog.Logger
}

// NewAuthHandler creates a login handler.
func NewAuthHandler(authenticator auth.Authenticator, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authenticator: authenticator, logger: logger}
}

// Login handles POST /login. Malformed bodies are treated as bad credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestLog(c, h.logger).Warn().Msg("Malformed login request")
		c.JSON(http.StatusUnauthorized, loginResponse{Success: false})
		return
	}

	token, err := h.authenticator.Login(req.Login, req.Password)
	if err != nil {
		requestLog(c, h.logger).Warn().Msg("Rejected login")
		c.JSON(http.StatusUnauthorized, loginResponse{Success: false})
		return
	}

	c.JSON(http.StatusOK, loginResponse{Success: true, Token: token})
}

// OrderHandler serves order analytics.
type OrderHandler struct {
	source     OrderSource
	aggregator Aggregator
	logger     zerolog.Logger
	now        func() time.Time
}

// NewOrderHandler creates an analytics handler.
func NewOrderHandler(source OrderSource, aggregator Aggregator, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		source:     source,
		aggregator: aggregator,
		logger:     logger,
		now:        time.Now,
	}
}

// ListOrders handles GET /orders.
// Upstream failures never fail the request; partial data is flagged by header.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	start := time.Now()

	loaded := h.source.Get(c.Request.Context())
	summaries, stats := h.aggregator.Aggregate(loaded.Orders)

	if loaded.Truncated {
		c.Header(truncatedHeader, "true")
	}

	requestLog(c, h.logger).Info().
		Int("orders", len(summaries)).
		Bool("truncated", loaded.Truncated).
		Dur("duration", time.Since(start)).
		Msg("Processed orders")

	c.JSON(http.StatusOK, ordersResponse{
		Orders:    summaries,
		Analytics: stats,
		Timestamp: h.now().Format(time.RFC3339Nano),
	})
}

// HealthHandler reports liveness and cache state.
type HealthHandler struct {
	source OrderSource
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(source OrderSource) *HealthHandler {
	return &HealthHandler{source: source}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", CacheFilled: h.source.Filled()})
}
