package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pass label values for frame metrics.
const (
	PassLive   = "live"
	PassEncode = "encode"
)

// Manager owns the Prometheus collectors for one shotchart process.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Stats fetch
	fetchDuration prometheus.Histogram
	fetchErrors   *prometheus.CounterVec
	shotsFetched  prometheus.Gauge
	shotsMade     prometheus.Gauge

	// Animation and output
	framesRendered *prometheus.CounterVec
	renderDuration prometheus.Histogram
	encodeDuration prometheus.Histogram
	outputBytes    prometheus.Gauge

	// Preview server
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry keeps the Go runtime collectors out of the textfile.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "shotchart",
		subsystem:        "run",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_duration_milliseconds",
		Help:        "Duration of the shot chart fetch in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.fetchErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_errors_total",
		Help:        "Failed shot chart fetches by source",
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.shotsFetched = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "shots",
		Help:        "Number of shot attempts in the fetched game",
		ConstLabels: m.constLabels,
	})

	m.shotsMade = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "shots_made",
		Help:        "Number of made shots in the fetched game",
		ConstLabels: m.constLabels,
	})

	m.framesRendered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "frames_rendered_total",
		Help:        "Frames rasterised, by animation pass",
		ConstLabels: m.constLabels,
	}, []string{"pass"})

	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_duration_milliseconds",
		Help:        "Time spent rasterising a single frame",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.encodeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "encode_duration_milliseconds",
		Help:        "Time spent encoding and writing the animation",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.outputBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "output_bytes",
		Help:        "Size of the written animation file",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Preview server requests by endpoint, method and status",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "Preview server request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordFetchDuration records how long the stats fetch took.
func RecordFetchDuration(ms float64) {
	globalManager.fetchDuration.Observe(ms)
}

// RecordFetchError counts a failed fetch from source.
func RecordFetchError(source string) {
	globalManager.fetchErrors.WithLabelValues(source).Inc()
}

// UpdateShots sets the attempt and make gauges.
func UpdateShots(attempts, made int) {
	globalManager.shotsFetched.Set(float64(attempts))
	globalManager.shotsMade.Set(float64(made))
}

// RecordFrameRendered counts one rasterised frame for pass.
func RecordFrameRendered(pass string, ms float64) {
	globalManager.framesRendered.WithLabelValues(pass).Inc()
	globalManager.renderDuration.Observe(ms)
}

// RecordEncode records the encode duration and resulting file size.
func RecordEncode(ms float64, bytes int64) {
	globalManager.encodeDuration.Observe(ms)
	globalManager.outputBytes.Set(float64(bytes))
}

// RecordHTTPRequest counts a preview server request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records a preview server request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// GetRegistry returns the registry backing the package-level recorders.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current metrics in text exposition format to
// path, suitable for the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}
