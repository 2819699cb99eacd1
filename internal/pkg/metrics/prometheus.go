package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "userdata"

// Load and query outcomes
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics holds every collector of the module on its own registry, so a
// CLI run can dump them to a file and tests never share state.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics (mock users server)
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Accessor metrics
	loadsTotal    *prometheus.CounterVec
	loadDuration  prometheus.Histogram
	snapshotUsers prometheus.Gauge
	queriesTotal  *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),

		httpRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),

		loadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "accessor",
				Name:      "loads_total",
				Help:      "Total number of user snapshot loads",
			},
			[]string{"result"},
		),

		loadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "accessor",
				Name:      "load_duration_seconds",
				Help:      "Duration of user snapshot loads in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),

		snapshotUsers: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "accessor",
				Name:      "snapshot_users",
				Help:      "Number of users in the current snapshot",
			},
		),

		queriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "accessor",
				Name:      "queries_total",
				Help:      "Total number of snapshot queries",
			},
			[]string{"query", "result"},
		),
	}
}

// Registry returns the registry holding all collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordLoad records the outcome of a snapshot load
func (m *Metrics) RecordLoad(result string, duration time.Duration) {
	m.loadsTotal.WithLabelValues(result).Inc()
	m.loadDuration.Observe(duration.Seconds())
}

// SetSnapshotUsers sets the gauge for the snapshot size
func (m *Metrics) SetSnapshotUsers(count int) {
	m.snapshotUsers.Set(float64(count))
}

// RecordQuery records the outcome of a snapshot query
func (m *Metrics) RecordQuery(query, result string) {
	m.queriesTotal.WithLabelValues(query, result).Inc()
}

// WriteToTextfile writes the current values in the text exposition format,
// ready for a node_exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		m.httpRequestsInFlight.Inc()
		defer m.httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Get route pattern from chi
		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)

		m.httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
