package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the advisor's Prometheus metrics.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	consultations      *prometheus.CounterVec
	fallbacks          *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
}

// NewMetrics initialises the registry with HTTP and consultation metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "advisor_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	consultations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_consultations_total",
		Help: "Consultations by retrieval branch.",
	}, []string{"branch"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_generation_fallbacks_total",
		Help: "Consultations answered with the fallback message.",
	}, []string{"branch"})
	generation := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "advisor_generation_duration_seconds",
		Help:    "Text generation latency per branch.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
	}, []string{"branch"})
	registry.MustRegister(requests, duration, consultations, fallbacks, generation)
	return &Metrics{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:      requests,
		requestDuration:    duration,
		consultations:      consultations,
		fallbacks:          fallbacks,
		generationDuration: generation,
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

// ObserveConsultation records one finished consultation. A zero generation
// duration means the generator was never called.
func (m *Metrics) ObserveConsultation(branch string, fallback bool, generation time.Duration) {
	if m == nil {
		return
	}
	m.consultations.WithLabelValues(branch).Inc()
	if fallback {
		m.fallbacks.WithLabelValues(branch).Inc()
	}
	if generation > 0 {
		m.generationDuration.WithLabelValues(branch).Observe(generation.Seconds())
	}
}

// Registerer exposes the registry for additional collectors.
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
