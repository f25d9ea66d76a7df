package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics for the back office.
type Metrics struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewMetrics initialises the registry with HTTP and upstream API collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backoffice_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	upstream := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_upstream_requests_total",
		Help: "Calls to the restaurant API, by method, endpoint and status.",
	}, []string{"method", "endpoint", "code"})
	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backoffice_upstream_request_duration_seconds",
		Help:    "Latency of calls to the restaurant API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})
	registry.MustRegister(requests, duration, upstream, upstreamDuration)
	return &Metrics{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:    requests,
		requestDuration:  duration,
		upstreamTotal:    upstream,
		upstreamDuration: upstreamDuration,
	}
}

// Handler returns the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request counts and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveUpstream records one call to the restaurant API. Status 0 means the
// request never got an answer.
func (m *Metrics) ObserveUpstream(method, endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.upstreamDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// Registerer exposes the registry for custom collectors.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
