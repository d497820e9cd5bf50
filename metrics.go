package rangka

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request lifecycle and
// the rate limiter. It is safe for concurrent use.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec

	limiterWaitSeconds *prometheus.HistogramVec

	errorsTotal *prometheus.CounterVec
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rangka_requests_total",
				Help: "Total number of HTTP requests made",
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rangka_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rangka_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
			[]string{"method", "endpoint"},
		),
		limiterWaitSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rangka_rate_limiter_wait_seconds",
				Help:    "Time spent blocked on the rate limiter",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rangka_errors_total",
				Help: "Total number of errors by type",
			},
			[]string{"type", "method", "endpoint"},
		),
	}
}

// RecordRequestStart increments the in-flight gauge.
func (m *MetricsCollector) RecordRequestStart(method, endpoint string) {
	if m == nil {
		return
	}
	m.requestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// RecordRequestEnd decrements the in-flight gauge.
func (m *MetricsCollector) RecordRequestEnd(method, endpoint string) {
	if m == nil {
		return
	}
	m.requestsInFlight.WithLabelValues(method, endpoint).Dec()
}

// RecordRequest records a completed request with its status and duration.
func (m *MetricsCollector) RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(statusCode)
	m.requestsTotal.WithLabelValues(method, code, endpoint).Inc()
	m.requestDuration.WithLabelValues(method, code, endpoint).Observe(duration.Seconds())
}

// RecordLimiterWait records time spent blocked waiting for a token.
func (m *MetricsCollector) RecordLimiterWait(endpoint string, waited time.Duration) {
	if m == nil {
		return
	}
	m.limiterWaitSeconds.WithLabelValues(endpoint).Observe(waited.Seconds())
}

// RecordError increments the error counter for the given error type.
func (m *MetricsCollector) RecordError(errorType, method, endpoint string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(errorType, method, endpoint).Inc()
}
