package rangka

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)

	if collector == nil {
		t.Fatal("NewMetricsCollectorWithRegistry() returned nil")
	}

	if collector.requestsTotal == nil {
		t.Error("requestsTotal metric not initialized")
	}

	if collector.requestDuration == nil {
		t.Error("requestDuration metric not initialized")
	}

	if collector.requestsInFlight == nil {
		t.Error("requestsInFlight metric not initialized")
	}

	if collector.limiterWaitSeconds == nil {
		t.Error("limiterWaitSeconds metric not initialized")
	}

	if collector.errorsTotal == nil {
		t.Error("errorsTotal metric not initialized")
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var collector *MetricsCollector

	collector.RecordRequestStart("GET", "example.com/")
	collector.RecordRequestEnd("GET", "example.com/")
	collector.RecordRequest("GET", "example.com/", 200, time.Millisecond)
	collector.RecordLimiterWait("example.com/", time.Millisecond)
	collector.RecordError("Network", "GET", "example.com/")
}

func TestMetricsRecordedForRequests(t *testing.T) {
	server := httptest.NewServer(jsonHandler(t, http.StatusOK, `{}`))
	defer server.Close()

	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)

	client, err := New(server.URL, WithMetricsCollector(collector))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if _, err := client.Get(context.Background(), "/items"); err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}

	endpoint := endpointLabel(client.resolveURL("/items", nil))
	if got := testutil.ToFloat64(collector.requestsTotal.WithLabelValues("GET", "200", endpoint)); got != 1 {
		t.Errorf("expected 1 request recorded, got %v", got)
	}
	if inFlight := testutil.ToFloat64(collector.requestsInFlight.WithLabelValues("GET", endpoint)); inFlight != 0 {
		t.Errorf("expected 0 requests in flight, got %v", inFlight)
	}
}

func TestMetricsRecordedForErrors(t *testing.T) {
	server := httptest.NewServer(jsonHandler(t, http.StatusInternalServerError, `{"detail":"boom"}`))
	defer server.Close()

	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)

	client, err := New(server.URL, WithMetricsCollector(collector))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if _, err := client.Get(context.Background(), "/boom"); err == nil {
		t.Fatal("expected server error")
	}

	endpoint := endpointLabel(client.resolveURL("/boom", nil))
	if got := testutil.ToFloat64(collector.errorsTotal.WithLabelValues("ServerError", "GET", endpoint)); got != 1 {
		t.Errorf("expected 1 server error recorded, got %v", got)
	}
}
