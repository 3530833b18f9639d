package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Sternrassler/order-analytics/pkg/pagination"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CollectionLoader loads the full order collection.
type CollectionLoader interface {
	LoadAll(ctx context.Context) pagination.LoadResult
}

// OrderCache is a single-slot memo of the order collection.
// The slot is filled by the first Get and kept for the life of the process.
type OrderCache struct {
	loader CollectionLoader
	logger zerolog.Logger

	mu   sync.Mutex
	slot atomic.Pointer[pagination.LoadResult]
}

// NewOrderCache creates an empty cache backed by loader.
func NewOrderCache(loader CollectionLoader) *OrderCache {
	if loader == nil {
		panic("collection loader cannot be nil")
	}
	return &OrderCache{
		loader: loader,
		logger: log.With().Str("component", "order-cache").Logger(),
	}
}

// Get returns the cached collection, loading it on the first call.
// Concurrent first callers share one load. The returned Orders slice is
// shared with every other caller and must not be modified.
func (c *OrderCache) Get(ctx context.Context) pagination.LoadResult {
	if res := c.slot.Load(); res != nil {
		CacheHits.Inc()
		return *res
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if res := c.slot.Load(); res != nil {
		CacheHits.Inc()
		return *res
	}

	CacheMisses.Inc()
	c.logger.Debug().Msg("Cache empty, loading order collection")

	// The slot outlives the request that fills it.
	res := c.loader.LoadAll(context.WithoutCancel(ctx))
	c.slot.Store(&res)

	CachedOrders.Set(float64(len(res.Orders)))
	if res.Truncated {
		CacheTruncated.Set(1)
		c.logger.Warn().
			Err(res.Err).
			Int("orders", len(res.Orders)).
			Msg("Cached a partial order collection")
	} else {
		CacheTruncated.Set(0)
	}

	return res
}

// Filled reports whether the slot holds a collection.
func (c *OrderCache) Filled() bool {
	return c.slot.Load() != nil
}
