package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sternrassler/order-analytics/internal/config"
	"github.com/Sternrassler/order-analytics/internal/server"
	"github.com/Sternrassler/order-analytics/pkg/analytics"
	"github.com/Sternrassler/order-analytics/pkg/auth"
	"github.com/Sternrassler/order-analytics/pkg/cache"
	"github.com/Sternrassler/order-analytics/pkg/client"
	"github.com/Sternrassler/order-analytics/pkg/logging"
	"github.com/Sternrassler/order-analytics/pkg/pagination"
	"github.com/gin-gonic/gin"
)

const (
	readTimeout = 15 * time.Second
	idleTimeout = 60 * time.Second

	// A cold /orders call walks every upstream page.
	writeTimeout = 5 * time.Minute

	shutdownTimeout = 5 * time.Second
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(logging.Config{
		Level:   logging.LogLevel(cfg.App.LogLevel),
		Pretty:  cfg.App.LogPretty,
		Service: "order-analytics",
	})

	gin.SetMode(cfg.App.GinMode)

	router, err := newRouter(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build router")
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.ListenAddr,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	go func() {
		logger.Info().
			Str("addr", cfg.HTTP.ListenAddr).
			Str("upstream", cfg.Upstream.BaseURL).
			Int("page_size", cfg.Upstream.PageSize).
			Msg("Starting order analytics server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		return
	}

	logger.Info().Msg("Server stopped")
}

// newRouter wires the upstream client, loader, cache, aggregator and
// auth into the HTTP API.
func newRouter(cfg *config.Config) (*server.Router, error) {
	upstream, err := client.New(client.Config{
		BaseURL:  cfg.Upstream.BaseURL,
		APIKey:   cfg.Upstream.APIKey,
		PageSize: cfg.Upstream.PageSize,
		Timeout:  cfg.Upstream.FetchTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create upstream client: %w", err)
	}

	loader := pagination.NewLoader(upstream, pagination.Config{
		PageSize: cfg.Upstream.PageSize,
		Timeout:  cfg.Upstream.FetchTimeout,
	})

	return server.NewRouter(server.Deps{
		Gate:          auth.NewStaticTokenGate(cfg.Auth.Token),
		Authenticator: auth.NewStaticCredentials(cfg.Auth.Login, cfg.Auth.Password, cfg.Auth.Token),
		Orders:        cache.NewOrderCache(loader),
		Aggregator:    analytics.NewAggregator(analytics.DefaultStatusGroups(), analytics.DefaultDeliveryMarker),
		CORSOrigins:   cfg.HTTP.CORSOrigins,
		Logger:        logging.NewLogger("http"),
	}), nil
}
