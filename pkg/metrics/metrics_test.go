package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func TestRegistry(t *testing.T) {
	if Registry == nil {
		t.Error("Registry should not be nil")
	}

	if Registry != prometheus.DefaultRegisterer {
		t.Error("Registry should be the default Prometheus registerer")
	}
	if Gatherer != prometheus.DefaultGatherer {
		t.Error("Gatherer should be the default Prometheus gatherer")
	}
}

func TestHandler_InstrumentsScrapesOnRegistry(t *testing.T) {
	handler := Handler()
	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	}

	families, err := Gatherer.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	var scrapes float64
	for _, mf := range families {
		if mf.GetName() != "promhttp_metric_handler_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "code" && label.GetValue() == "200" {
					scrapes = m.GetCounter().GetValue()
				}
			}
		}
	}
	if scrapes < 2 {
		t.Errorf("promhttp_metric_handler_requests_total{code=200} = %v, want >= 2", scrapes)
	}
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	counter := promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_metrics_handler_test_total",
		Help: "Counter registered by the handler test",
	})
	counter.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "orders_metrics_handler_test_total 1") {
		t.Error("Expected registered counter in exposition output")
	}
}
