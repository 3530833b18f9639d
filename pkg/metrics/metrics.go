// Package metrics provides the Prometheus registry and exposition handler for
// the order analytics service. All metrics are defined in their respective
// packages (client, cache, server) to keep modules independent.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is where promauto registers every service metric. The
// exposition handler's own request counters are registered here as well.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the source the exposition handler reads from.
var Gatherer = prometheus.DefaultGatherer

// Handler returns the /metrics exposition handler for Gatherer,
// instrumented with promhttp_metric_handler_* counters on Registry.
func Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(
		Registry,
		promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{}),
	)
}

// Metrics Documentation
//
// Upstream Metrics (pkg/client):
//   - orders_upstream_requests_total{status} (Counter): Page requests by HTTP status or "transport_error"
//   - orders_upstream_request_duration_seconds (Histogram): Page request duration
//   - orders_upstream_errors_total{class} (Counter): Failed pages by class (client, server, timeout, network, decode)
//
// Cache Metrics (pkg/cache):
//   - orders_cache_hits_total (Counter): Get calls served from the filled slot
//   - orders_cache_misses_total (Counter): Get calls that ran the collection load
//   - orders_cache_orders (Gauge): Orders currently cached
//   - orders_cache_truncated (Gauge): 1 when the cached load is partial
//
// HTTP Metrics (internal/server):
//   - orders_http_requests_total{route, status} (Counter): Requests by route and status
//   - orders_http_request_duration_seconds{route} (Histogram): Request duration by route
//
// Example Prometheus Queries:
//
//   # Failed page rate
//   rate(orders_upstream_errors_total[5m])
//
//   # Partial data being served
//   orders_cache_truncated == 1
//
//   # Unauthorized rate on /orders
//   rate(orders_http_requests_total{route="/orders", status="401"}[5m])
//
//   # P95 /orders latency
//   histogram_quantile(0.95, rate(orders_http_request_duration_seconds_bucket{route="/orders"}[5m]))
