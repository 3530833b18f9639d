// Package cache provides the process-wide order collection cache.
//
// OrderCache holds exactly one materialized load of the upstream collection:
//
// - The first Get runs the collection loader; concurrent callers wait for it
// - Every later Get returns the same result without network activity
// - Reads after the fill take no lock
// - The slot never expires and is never refreshed within process lifetime
// - Prometheus metrics for observability
//
// # Basic Usage
//
//	loader := pagination.NewLoader(upstreamClient, pagination.DefaultConfig())
//	orders := cache.NewOrderCache(loader)
//
//	result := orders.Get(ctx)
//	if result.Truncated {
//		// A page failed during the single load; data is partial
//	}
//
// # Metrics
//
//   - orders_cache_hits_total - Get calls served from the filled slot
//   - orders_cache_misses_total - Get calls that performed the load
//   - orders_cache_orders - Number of orders in the slot
//   - orders_cache_truncated - 1 when the cached load is partial
package cache
