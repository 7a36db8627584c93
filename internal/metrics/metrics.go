// Package metrics exposes Prometheus metrics for the explorer service.
// Record methods are safe to call on a nil *Registry, so components can be
// constructed without metrics in tests and tools.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Dataset Metrics
	DatasetLoadsTotal   *prometheus.CounterVec
	DatasetLoadDuration *prometheus.HistogramVec
	DatasetSkippedTotal prometheus.Gauge
	GraphNodesTotal     prometheus.Gauge
	GraphLinksTotal     *prometheus.GaugeVec

	// Filter Metrics
	FilterRequestsTotal *prometheus.CounterVec
	FilterDuration      prometheus.Histogram

	// Event Metrics
	SSEClientsConnected prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
	}

	r.initHTTPMetrics()
	r.initDatasetMetrics()
	r.initFilterMetrics()

	return r
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dynasty_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dynasty_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	r.HTTPRequestsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "dynasty_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	r.SSEClientsConnected = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "dynasty_sse_clients_connected",
			Help: "Number of connected event stream clients",
		},
	)
}

func (r *Registry) initDatasetMetrics() {
	r.DatasetLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dynasty_dataset_loads_total",
			Help: "Total number of dataset loads",
		},
		[]string{"result"}, // success, failure, aborted, superseded
	)

	r.DatasetLoadDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dynasty_dataset_load_duration_seconds",
			Help:    "Duration of dataset fetch, parse and graph build in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"result"},
	)

	r.DatasetSkippedTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "dynasty_dataset_skipped_records",
			Help: "Malformed records skipped by the most recent load",
		},
	)

	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "dynasty_graph_nodes",
			Help: "Nodes in the canonical graph",
		},
	)

	r.GraphLinksTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dynasty_graph_links",
			Help: "Links in the canonical graph by type",
		},
		[]string{"type"},
	)
}

func (r *Registry) initFilterMetrics() {
	r.FilterRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dynasty_filter_requests_total",
			Help: "Total number of derived graph requests by cache result",
		},
		[]string{"cache"}, // hit, miss, shared
	)

	r.FilterDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dynasty_filter_duration_seconds",
			Help:    "Time to produce a derived graph in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackInFlight increments the in-flight gauge and returns its decrement
func (r *Registry) TrackInFlight() func() {
	if r == nil {
		return func() {}
	}
	r.HTTPRequestsInFlight.Inc()
	return r.HTTPRequestsInFlight.Dec
}

// RecordLoad records the outcome of a dataset load
func (r *Registry) RecordLoad(result string, duration time.Duration) {
	if r == nil {
		return
	}
	r.DatasetLoadsTotal.WithLabelValues(result).Inc()
	r.DatasetLoadDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// UpdateGraphMetrics records the size of a newly applied canonical graph
func (r *Registry) UpdateGraphMetrics(nodes, groupLinks, mentionLinks, skipped int) {
	if r == nil {
		return
	}
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphLinksTotal.WithLabelValues("group").Set(float64(groupLinks))
	r.GraphLinksTotal.WithLabelValues("resolved-mention").Set(float64(mentionLinks))
	r.DatasetSkippedTotal.Set(float64(skipped))
}

// RecordFilter records a derived graph request
func (r *Registry) RecordFilter(cacheResult string, duration time.Duration) {
	if r == nil {
		return
	}
	r.FilterRequestsTotal.WithLabelValues(cacheResult).Inc()
	r.FilterDuration.Observe(duration.Seconds())
}

// SetSSEClients records the number of connected event stream clients
func (r *Registry) SetSSEClients(n int) {
	if r == nil {
		return
	}
	r.SSEClientsConnected.Set(float64(n))
}
