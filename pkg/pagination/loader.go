// Package pagination drives sequential page retrieval of the upstream order collection
package pagination

import (
	"context"
	"time"

	"github.com/Sternrassler/order-analytics/pkg/client"
	"github.com/Sternrassler/order-analytics/pkg/order"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds loader configuration
type Config struct {
	// PageSize is the upstream page limit; a shorter page marks the last page
	PageSize int
	// Timeout per page fetch
	Timeout time.Duration
}

// DefaultConfig returns the paging contract of the upstream order API
func DefaultConfig() Config {
	return Config{
		PageSize: 100,
		Timeout:  10 * time.Second,
	}
}

// PageFetcher retrieves a single page of orders
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) client.PageResult
}

// LoadResult is the outcome of a full collection load
type LoadResult struct {
	Orders []order.RawOrder
	// Pages is the number of pages that contributed orders
	Pages int
	// Truncated is true when a page failed and later pages were never read
	Truncated bool
	// Err is the page failure behind Truncated
	Err      error
	Duration time.Duration
}

// Loader fetches every page of the order collection in ascending order
type Loader struct {
	fetcher PageFetcher
	config  Config
	logger  zerolog.Logger
}

// NewLoader creates a new collection loader
func NewLoader(fetcher PageFetcher, config Config) *Loader {
	if config.PageSize <= 0 {
		config.PageSize = 100
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	return &Loader{
		fetcher: fetcher,
		config:  config,
		logger:  log.With().Str("component", "collection-loader").Logger(),
	}
}

// LoadAll fetches pages starting at 1 until a failed, empty or short page.
// A failed page ends the load with whatever was accumulated; it is reported
// through LoadResult.Truncated, never as an error return.
func (l *Loader) LoadAll(ctx context.Context) LoadResult {
	start := time.Now()
	var result LoadResult

	for page := 1; ; page++ {
		pageStart := time.Now()

		pageCtx, cancel := context.WithTimeout(ctx, l.config.Timeout)
		res := l.fetcher.FetchPage(pageCtx, page)
		cancel()

		if res.Kind == client.ResultFailed {
			result.Truncated = true
			result.Err = res.Err
			l.logger.Warn().
				Err(res.Err).
				Str("error_class", string(client.ClassOf(res.Err))).
				Int("page", page).
				Int("orders_loaded", len(result.Orders)).
				Msg("Page fetch failed - returning partial results")
			break
		}

		if res.Kind == client.ResultEmpty || len(res.Orders) == 0 {
			l.logger.Debug().Int("page", page).Msg("Empty page, end of collection")
			break
		}

		result.Orders = append(result.Orders, res.Orders...)
		result.Pages++

		l.logger.Info().
			Int("page", page).
			Int("orders", len(res.Orders)).
			Dur("duration", time.Since(pageStart)).
			Msg("Loaded page")

		if len(res.Orders) < l.config.PageSize {
			break
		}
	}

	result.Duration = time.Since(start)

	l.logger.Info().
		Int("pages", result.Pages).
		Int("orders", len(result.Orders)).
		Bool("truncated", result.Truncated).
		Dur("duration", result.Duration).
		Msg("Collection load complete")

	return result
}
