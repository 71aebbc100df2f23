package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/odyssey-erp/odyssey-advisor/internal/jobs"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMetricsHandlerExposesJobMetrics(t *testing.T) {
	metrics := NewMetrics()
	jobs := jobmetrics.NewMetrics(metrics.Registerer())
	require.NoError(t, jobs.Track("advisor:stats_warmup").End(nil))

	require.Contains(t, scrape(t, metrics), `advisor_jobs_total{job="advisor:stats_warmup",status="success"} 1`)
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/test")

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusTeapot, rr.Code)

	body := scrape(t, metrics)
	require.Contains(t, body, `advisor_http_requests_total{code="418",route="/test"} 1`)
	require.Contains(t, body, `advisor_http_request_duration_seconds_bucket{route="/test"`)
}

func TestObserveConsultation(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveConsultation("general", false, 300*time.Millisecond)
	metrics.ObserveConsultation("general", true, 0)
	metrics.ObserveConsultation("cheap", true, time.Second)

	body := scrape(t, metrics)
	require.Contains(t, body, `advisor_consultations_total{branch="general"} 2`)
	require.Contains(t, body, `advisor_consultations_total{branch="cheap"} 1`)
	require.Contains(t, body, `advisor_generation_fallbacks_total{branch="general"} 1`)
	require.Contains(t, body, `advisor_generation_duration_seconds_count{branch="general"} 1`)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var metrics *Metrics
	metrics.ObserveConsultation("general", true, time.Second)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	require.NotNil(t, metrics.Middleware(next))

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
