package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks Get calls answered from the filled slot
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_cache_hits_total",
			Help: "Total number of order cache hits",
		},
	)

	// CacheMisses tracks Get calls that triggered the collection load
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_cache_misses_total",
			Help: "Total number of order cache misses",
		},
	)

	// CachedOrders tracks the number of orders held in the slot
	CachedOrders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "orders_cache_orders",
			Help: "Number of orders currently cached",
		},
	)

	// CacheTruncated is 1 when the cached collection came from a partial load
	CacheTruncated = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "orders_cache_truncated",
			Help: "Whether the cached order collection is partial (1) or complete (0)",
		},
	)
)
