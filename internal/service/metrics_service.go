package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the assistant.
// All observers are nil-receiver safe so wiring stays optional.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	oracleDuration  prometheus.Observer
	oracleFailures  prometheus.Counter
	proposalsTotal  *prometheus.CounterVec
	storeWrite      prometheus.Observer
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	oracleDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "oracle_request_duration_seconds",
		Help:    "Latency of completion oracle calls",
		Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	oracleFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "oracle_failures_total",
		Help: "Total failed completion oracle calls",
	})

	proposalsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_proposals_total",
		Help: "Interpreted oracle proposals by outcome",
	}, []string{"outcome"})

	storeWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_write_duration_seconds",
		Help:    "Latency of timetable bucket writes",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, oracleDuration, oracleFailures, proposalsTotal, storeWrite, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		oracleDuration:  oracleDuration,
		oracleFailures:  oracleFailures,
		proposalsTotal:  proposalsTotal,
		storeWrite:      storeWrite,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveOracleRequest records one oracle call.
func (m *MetricsService) ObserveOracleRequest(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.oracleDuration.Observe(duration.Seconds())
	if err != nil {
		m.oracleFailures.Inc()
	}
}

// CountProposal tallies an interpreted proposal outcome.
func (m *MetricsService) CountProposal(outcome string) {
	if m == nil {
		return
	}
	m.proposalsTotal.WithLabelValues(outcome).Inc()
}

// ObserveStoreWrite tracks the duration of a bucket write.
func (m *MetricsService) ObserveStoreWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.storeWrite.Observe(duration.Seconds())
}
