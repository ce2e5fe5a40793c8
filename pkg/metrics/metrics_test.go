package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordUpstreamQuery("ads", "campaigns", 3, nil, 10*time.Millisecond)
	m.RecordUpstreamQuery("ads", "keywords", 0, errors.New("boom"), time.Millisecond)
	m.RecordDefaultedSection("ads", "keywords")
	m.RecordTokenCache("ga4", true)
	m.RecordTokenRefresh("ga4", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamQueries.WithLabelValues("ads", "campaigns", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamQueries.WithLabelValues("ads", "keywords", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.UpstreamRows.WithLabelValues("ads", "campaigns")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DefaultSections.WithLabelValues("ads", "keywords")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokenCache.WithLabelValues("ga4", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokenRefreshes.WithLabelValues("ga4", "success")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/v1/ads/data", http.StatusOK, time.Millisecond)
		m.RecordUpstreamQuery("gsc", "totals", 1, nil, time.Millisecond)
		m.RecordTokenRefresh("gsc", nil)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordRequest("/healthcheck", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "marketing_dashboard_http_requests_total")
}
