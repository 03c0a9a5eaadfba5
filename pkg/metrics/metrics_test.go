package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics("elibrary")
	require.NoError(t, m.RegisterCounter("signups_total", "Signups"))
	require.NoError(t, m.RegisterCounterVec("requests_total", "Requests", []string{"route", "status"}))

	m.IncCounter("signups_total")
	m.IncCounter("signups_total")
	m.IncCounterVec("requests_total", "/api/books/allBooks", "200")
	m.IncCounter("never_registered")

	body := scrape(t, m)
	assert.Contains(t, body, "elibrary_signups_total 2")
	assert.Contains(t, body, `elibrary_requests_total{route="/api/books/allBooks",status="200"} 1`)
	assert.NotContains(t, body, "never_registered")
}

func TestMetrics_Gauge(t *testing.T) {
	m := NewMetrics("elibrary")
	require.NoError(t, m.RegisterGauge("in_flight", "In flight"))

	m.IncGauge("in_flight")
	m.IncGauge("in_flight")
	m.DecGauge("in_flight")

	assert.Contains(t, scrape(t, m), "elibrary_in_flight 1")
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	m := NewMetrics("elibrary")
	require.NoError(t, m.RegisterCounter("logins_total", "Logins"))
	assert.Error(t, m.RegisterCounter("logins_total", "Logins"))
}

func TestMetrics_Histogram(t *testing.T) {
	m := NewMetrics("elibrary")
	require.NoError(t, m.RegisterHistogramVec("request_duration_seconds", "Latency", []float64{0.1, 1}, []string{"route"}))
	m.ObserveHistogramVec("request_duration_seconds", 0.05, "/api/posts/")

	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "elibrary_request_duration_seconds", families[0].GetName())
	assert.Equal(t, uint64(1), families[0].GetMetric()[0].GetHistogram().GetSampleCount())
}
