package server

import (
	"strconv"
	"time"

	"github.com/Sternrassler/order-analytics/pkg/auth"
	"github.com/Sternrassler/order-analytics/pkg/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

const (
	authHeaderKey   = "Authorization"
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_http_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orders_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds by route",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}, []string{"route"})
)

// requestID propagates or assigns an X-Request-ID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLog tags logger with the request id assigned by requestID.
func requestLog(c *gin.Context, logger zerolog.Logger) *zerolog.Logger {
	l := logging.WithRequestID(logger, c.GetString(requestIDKey))
	return &l
}

// requestLogger logs one line per request. Headers and bodies are not logged.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		duration := time.Since(start)

		httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(duration.Seconds())

		reqLogger := requestLog(c, logger)
		event := reqLogger.Info()
		if status >= 500 {
			event = reqLogger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("HTTP request")
	}
}

// recovery turns handler panics into a JSON 500.
func recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		requestLog(c, logger).Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("Handler panic")

		c.AbortWithStatusJSON(500, gin.H{"error": "Internal Server Error"})
	})
}

// corsMiddleware allows the dashboard frontend to call the API.
// A single "*" origin allows every origin.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", authHeaderKey, requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader, truncatedHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// authCheck rejects requests the gate does not authorize.
func authCheck(gate auth.Gate, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Authorize(c.GetHeader(authHeaderKey)); err != nil {
			requestLog(c, logger).Warn().
				Str("path", c.Request.URL.Path).
				Msg("Unauthorized request")
			c.AbortWithStatusJSON(401, errorResponse{Error: "Unauthorized"})
			return
		}
		c.Next()
	}
}
