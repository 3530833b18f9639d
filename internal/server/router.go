// Package server exposes the order analytics HTTP API.
package server

import (
	"github.com/Sternrassler/order-analytics/pkg/auth"
	"github.com/Sternrassler/order-analytics/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Router is the gin engine with all routes registered.
type Router struct {
	*gin.Engine
}

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Gate          auth.Gate
	Authenticator auth.Authenticator
	Orders        OrderSource
	Aggregator    Aggregator
	CORSOrigins   []string
	Logger        zerolog.Logger
}

// NewRouter builds the HTTP API.
func NewRouter(deps Deps) *Router {
	router := gin.New()

	router.Use(requestID())
	router.Use(requestLogger(deps.Logger))
	router.Use(recovery(deps.Logger))
	router.Use(corsMiddleware(deps.CORSOrigins))

	authHandler := NewAuthHandler(deps.Authenticator, deps.Logger)
	orderHandler := NewOrderHandler(deps.Orders, deps.Aggregator, deps.Logger)
	healthHandler := NewHealthHandler(deps.Orders)

	router.POST("/login", authHandler.Login)

	orders := router.Group("/orders")
	{
		orders.Use(authCheck(deps.Gate, deps.Logger))
		orders.GET("", orderHandler.ListOrders)
	}

	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return &Router{router}
}
