// Package client provides the upstream order API client. It retrieves a single
// page of orders and maps every transport or protocol outcome to a PageResult.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sternrassler/order-analytics/pkg/order"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for upstream requests.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_upstream_requests_total",
		Help: "Total upstream page requests by HTTP status",
	}, []string{"status"})

	upstreamRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "orders_upstream_request_duration_seconds",
		Help:    "Upstream page request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_upstream_errors_total",
		Help: "Total failed upstream page requests by error class",
	}, []string{"class"})
)

// ErrorClass represents a classification of page fetch failures.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx responses and invalid page indices.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx and any other non-200 response.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassTimeout represents requests that exceeded their deadline.
	ErrorClassTimeout ErrorClass = "timeout"

	// ErrorClassNetwork represents connection and other transport errors.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents response bodies that are not valid JSON.
	ErrorClassDecode ErrorClass = "decode"
)

// ResultKind is the outcome of a single page fetch.
type ResultKind int

const (
	// ResultOK means the page contained at least one order.
	ResultOK ResultKind = iota
	// ResultEmpty means the page was well-formed but had no orders.
	ResultEmpty
	// ResultFailed means the page could not be retrieved or parsed.
	ResultFailed
)

// String returns a log-friendly name of the kind.
func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultEmpty:
		return "empty"
	case ResultFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PageResult is the typed outcome of FetchPage.
type PageResult struct {
	Kind   ResultKind
	Orders []order.RawOrder
	// Err is set only when Kind is ResultFailed.
	Err error
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the order listing endpoint, e.g. https://example.retailcrm.ru/api/v5/orders
	BaseURL string

	// APIKey is sent as the apiKey query parameter.
	APIKey string

	// PageSize is sent as the limit query parameter.
	PageSize int

	// Timeout bounds a single page request.
	Timeout time.Duration
}

// DefaultConfig returns the standard paging configuration for baseURL.
func DefaultConfig(baseURL, apiKey string) Config {
	return Config{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		PageSize: 100,
		Timeout:  10 * time.Second,
	}
}

// Client fetches order pages from the upstream API.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	config     Config
}

// New creates a new upstream client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("page_size must be >= 1 (got %d)", cfg.PageSize)
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive (got %s)", cfg.Timeout)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: baseURL,
		config:  cfg,
	}, nil
}

// PageSize returns the configured number of orders per page.
func (c *Client) PageSize() int {
	return c.config.PageSize
}

// FetchPage retrieves a single 1-based page of orders.
// It never returns an error directly; failures are reported as ResultFailed.
// FetchPage does not log or retry: the caller decides what a failure means.
func (c *Client) FetchPage(ctx context.Context, page int) PageResult {
	if page < 1 {
		return c.failed(&UpstreamError{
			Page:       page,
			ErrorClass: ErrorClassClient,
			Message:    "invalid page",
			Err:        ErrInvalidPage,
		})
	}

	startTime := time.Now()
	defer func() {
		upstreamRequestDuration.Observe(time.Since(startTime).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(page), http.NoBody)
	if err != nil {
		return c.failed(&UpstreamError{
			Page:       page,
			ErrorClass: ErrorClassClient,
			Message:    "create request",
			Err:        err,
		})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamRequestsTotal.WithLabelValues("transport_error").Inc()
		return c.failed(&UpstreamError{
			Page:       page,
			ErrorClass: classifyTransportError(err),
			Message:    "request failed",
			Err:        err,
		})
	}
	defer func() { _ = resp.Body.Close() }()

	upstreamRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return c.failed(&UpstreamError{
			Page:       page,
			StatusCode: resp.StatusCode,
			ErrorClass: classifyStatus(resp.StatusCode),
			Message:    resp.Status,
		})
	}

	var body order.Page
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		class := ErrorClassDecode
		// A deadline hit while streaming the body surfaces from the decoder.
		if ctx.Err() != nil {
			class = classifyTransportError(err)
		}
		return c.failed(&UpstreamError{
			Page:       page,
			StatusCode: resp.StatusCode,
			ErrorClass: class,
			Message:    "decode body",
			Err:        err,
		})
	}

	if len(body.Orders) == 0 {
		return PageResult{Kind: ResultEmpty}
	}

	return PageResult{Kind: ResultOK, Orders: body.Orders}
}

func (c *Client) pageURL(page int) string {
	u := *c.baseURL
	q := u.Query()
	q.Set("apiKey", c.config.APIKey)
	q.Set("limit", strconv.Itoa(c.config.PageSize))
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) failed(err *UpstreamError) PageResult {
	upstreamErrorsTotal.WithLabelValues(string(err.ErrorClass)).Inc()
	return PageResult{Kind: ResultFailed, Err: err}
}

// classifyStatus maps a non-200 HTTP status to an error class.
func classifyStatus(status int) ErrorClass {
	if status >= 400 && status < 500 {
		return ErrorClassClient
	}
	return ErrorClassServer
}

// classifyTransportError separates deadline expiry from other transport errors.
func classifyTransportError(err error) ErrorClass {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorClassTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorClassTimeout
	}
	return ErrorClassNetwork
}

// SetHTTPClient replaces the underlying HTTP client, e.g. to inject a
// custom transport. The given client is copied; when it has no timeout the
// configured page timeout applies.
func (c *Client) SetHTTPClient(client *http.Client) {
	hc := *client
	if hc.Timeout == 0 {
		hc.Timeout = c.config.Timeout
	}
	c.httpClient = &hc
}
