package jobmetrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
)

func TestTrackerCountsOutcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	_ = m.Track("banner:refresh").End(nil)
	err := m.Track("banner:refresh").End(errors.New("boom"))
	assert.EqualError(t, err, "boom")

	rr := httptest.NewRecorder()
	promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rr.Body.String()
	assert.Contains(t, body, `backoffice_jobs_total{job="banner:refresh",status="success"} 1`)
	assert.Contains(t, body, `backoffice_jobs_total{job="banner:refresh",status="failure"} 1`)
	assert.Contains(t, body, `backoffice_jobs_failures_total{job="banner:refresh"} 1`)
}

func TestNilTrackerIsSafe(t *testing.T) {
	var m *Metrics
	assert.NoError(t, m.Track("noop").End(nil))
}

func TestNewServedExposesJobRuns(t *testing.T) {
	m, handler := NewServed()
	_ = m.Track("overview:warmup").End(nil)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rr.Body.String()
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, body, `backoffice_jobs_total{job="overview:warmup",status="success"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
