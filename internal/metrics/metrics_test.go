package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ClickRecorded()
	m.ClickRecorded()
	m.Resolution("redirect")
	m.ObserveRequest(http.MethodGet, "/:slug", http.StatusFound, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.clicks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.redirects.WithLabelValues("redirect")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/:slug", "302")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ClickRecorded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "linkgate_clicks_recorded_total 1")
}
