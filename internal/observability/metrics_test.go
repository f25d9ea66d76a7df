package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	return rr.Body.String()
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

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}

	body := scrape(t, metrics)
	if !strings.Contains(body, `backoffice_http_requests_total{code="418",route="/test"} 1`) {
		t.Fatalf("expected metrics to record request, got: %s", body)
	}
	if !strings.Contains(body, `backoffice_http_request_duration_seconds_bucket{route="/test"`) {
		t.Fatalf("expected duration histogram to be present, got: %s", body)
	}
}

func TestObserveUpstream(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveUpstream(http.MethodGet, "/branch/:id", http.StatusNotFound, 20*time.Millisecond)

	body := scrape(t, metrics)
	if !strings.Contains(body, `backoffice_upstream_requests_total{code="404",endpoint="/branch/:id",method="GET"} 1`) {
		t.Fatalf("expected upstream counter, got: %s", body)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var metrics *Metrics
	metrics.ObserveUpstream(http.MethodGet, "/x", 200, time.Millisecond)
	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
