package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	browseResults *prometheus.HistogramVec
	exportsTotal  *prometheus.CounterVec
	exportBytes   *prometheus.HistogramVec
	baseRecords   prometheus.Gauge
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lcb",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lcb",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lcb",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	browseResults := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lcb",
			Subsystem: "browse",
			Name:      "filtered_records",
			Help:      "Distribution of records returned per filtered view.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"service", "endpoint"},
	)
	exportsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lcb",
			Subsystem: "export",
			Name:      "requests_total",
			Help:      "Total export downloads by format and status.",
		},
		[]string{"service", "format", "status"},
	)
	exportBytes := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lcb",
			Subsystem: "export",
			Name:      "payload_bytes",
			Help:      "Size of successful export payloads.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"service", "format"},
	)
	baseRecords := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lcb",
			Subsystem: "source",
			Name:      "base_records",
			Help:      "Number of records in the loaded base table.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		browseResults,
		exportsTotal,
		exportBytes,
		baseRecords,
	)

	return &HTTPServerMetrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestInFlight: requestInFlight,
		browseResults:   browseResults,
		exportsTotal:    exportsTotal,
		exportBytes:     exportBytes,
		baseRecords:     baseRecords,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			m.requestInFlight.Inc()
			defer m.requestInFlight.Dec()

			next.ServeHTTP(recorder, r)

			path := routePattern(r)
			m.requestTotal.WithLabelValues(
				service,
				r.Method,
				path,
				strconv.Itoa(recorder.statusCode),
			).Inc()
			m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// routePattern labels requests by their chi route so label cardinality stays
// bounded; unrouted paths share one label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func (m *HTTPServerMetrics) RecordBrowse(service, endpoint string, shown int) {
	m.browseResults.WithLabelValues(service, endpoint).Observe(float64(shown))
}

func (m *HTTPServerMetrics) RecordExport(service, format string, size int, err error) {
	if format == "" {
		format = "unknown"
	}
	if err != nil {
		m.exportsTotal.WithLabelValues(service, format, "error").Inc()
		return
	}
	m.exportsTotal.WithLabelValues(service, format, "success").Inc()
	m.exportBytes.WithLabelValues(service, format).Observe(float64(size))
}

func (m *HTTPServerMetrics) SetBaseRecords(n int) {
	m.baseRecords.Set(float64(n))
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
