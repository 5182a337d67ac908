// Package metrics provides Prometheus metrics for the iplboard dashboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the dashboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Dataset Metrics - What was loaded at startup
	datasetRecords      *prometheus.GaugeVec
	datasetLoadDuration prometheus.Histogram
	venueUnmapped       prometheus.Gauge

	// Report Metrics - Aggregate computation and rendering
	viewComputeDuration *prometheus.HistogramVec
	viewRenderErrors    *prometheus.CounterVec
	selectionRecomputes *prometheus.CounterVec
	exportsTotal        prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	wsConnections       prometheus.Gauge

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "iplboard",
		subsystem:        "dashboard",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.datasetRecords = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_records",
		Help:        "Number of records loaded per record set (matches, deliveries)",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.datasetLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_load_duration_milliseconds",
		Help:        "Time spent loading both record sets at startup",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.venueUnmapped = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "venue_unmapped",
		Help:        "Distinct raw venue strings without a canonical mapping entry",
		ConstLabels: m.constLabels,
	})

	m.viewComputeDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "view_compute_duration_milliseconds",
		Help:        "Time spent computing and rendering one aggregate view",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"view"})

	m.viewRenderErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "view_render_errors_total",
		Help:        "Views that could not be rendered and fell back to a placeholder",
		ConstLabels: m.constLabels,
	}, []string{"view"})

	m.selectionRecomputes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "selection_recomputes_total",
		Help:        "Selection-driven recomputations by selector kind",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.exportsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "exports_total",
		Help:        "Workbook exports produced",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.wsConnections = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ws_connections",
		Help:        "Open selection websocket connections",
		ConstLabels: m.constLabels,
	})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "Errors by type and severity",
		ConstLabels: m.constLabels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Errors by endpoint, method and type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutines",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})
}

// Instance methods. Every recorder is a no-op when the manager is disabled.

// SetDatasetRecords sets the loaded record count for a record set.
func (m *Manager) SetDatasetRecords(kind string, count int) {
	if m.enabled {
		m.datasetRecords.WithLabelValues(kind).Set(float64(count))
	}
}

// ObserveDatasetLoad records the startup load time.
func (m *Manager) ObserveDatasetLoad(ms float64) {
	if m.enabled {
		m.datasetLoadDuration.Observe(ms)
	}
}

// SetVenueUnmapped sets the number of raw venues that pass through unnormalized.
func (m *Manager) SetVenueUnmapped(count int) {
	if m.enabled {
		m.venueUnmapped.Set(float64(count))
	}
}

// ObserveViewCompute records the compute time of one view.
func (m *Manager) ObserveViewCompute(view string, ms float64) {
	if m.enabled {
		m.viewComputeDuration.WithLabelValues(view).Observe(ms)
	}
}

// IncViewRenderError counts a view that fell back to a placeholder.
func (m *Manager) IncViewRenderError(view string) {
	if m.enabled {
		m.viewRenderErrors.WithLabelValues(view).Inc()
	}
}

// IncSelectionRecompute counts a selection-driven recomputation.
func (m *Manager) IncSelectionRecompute(kind string) {
	if m.enabled {
		m.selectionRecomputes.WithLabelValues(kind).Inc()
	}
}

// IncExport counts a produced workbook.
func (m *Manager) IncExport() {
	if m.enabled {
		m.exportsTotal.Inc()
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records an errored HTTP request by type and endpoint.
func (m *Manager) RecordHTTPError(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// AddWSConnections adjusts the open websocket gauge by delta.
func (m *Manager) AddWSConnections(delta int) {
	if m.enabled {
		m.wsConnections.Add(float64(delta))
	}
}

// SetSystemStats sets heap bytes and goroutine count.
func (m *Manager) SetSystemStats(heapBytes uint64, goroutines int) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(heapBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// RefreshInterval returns how often gauges sourced from polling should update.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Package-level helpers delegate to the global manager.

// SetDatasetRecords sets the loaded record count for a record set.
func SetDatasetRecords(kind string, count int) { globalManager.SetDatasetRecords(kind, count) }

// ObserveDatasetLoad records the startup load time in milliseconds.
func ObserveDatasetLoad(ms float64) { globalManager.ObserveDatasetLoad(ms) }

// SetVenueUnmapped sets the unmapped venue gauge.
func SetVenueUnmapped(count int) { globalManager.SetVenueUnmapped(count) }

// ObserveViewCompute records the compute time of one view in milliseconds.
func ObserveViewCompute(view string, ms float64) { globalManager.ObserveViewCompute(view, ms) }

// IncViewRenderError counts a view render failure.
func IncViewRenderError(view string) { globalManager.IncViewRenderError(view) }

// IncSelectionRecompute counts a selection recompute.
func IncSelectionRecompute(kind string) { globalManager.IncSelectionRecompute(kind) }

// IncExport counts a produced workbook.
func IncExport() { globalManager.IncExport() }

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordHTTPError records an errored HTTP request.
func RecordHTTPError(endpoint, method, errorType, severity string) {
	globalManager.RecordHTTPError(endpoint, method, errorType, severity)
}

// AddWSConnections adjusts the open websocket gauge.
func AddWSConnections(delta int) { globalManager.AddWSConnections(delta) }

// SetSystemStats sets heap bytes and goroutine count.
func SetSystemStats(heapBytes uint64, goroutines int) {
	globalManager.SetSystemStats(heapBytes, goroutines)
}

// RefreshInterval returns how often polled gauges should be updated.
func RefreshInterval() time.Duration { return globalManager.RefreshInterval() }

// Configure replaces the global manager with one built from opts on a fresh
// registry. Call it once at startup, before anything is recorded.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	customRegistry = registry
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(registry)}, opts...)...)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Since returns milliseconds elapsed since start as a float.
func Since(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
