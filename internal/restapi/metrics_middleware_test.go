package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"cheminot.railnav.org/internal/metrics"
)

func TestMetricsHandler_RecordsRequests(t *testing.T) {
	m := metrics.New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := MetricsHandler(m)(mux)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/test", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/test", nil))

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "GET /api/test", "200"))
	assert.Equal(t, float64(2), count)
}

func TestMetricsHandler_UnmatchedPath(t *testing.T) {
	m := metrics.New()
	handler := MetricsHandler(m)(http.NewServeMux())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nope", nil))

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	assert.Equal(t, float64(1), count)
}

func TestMetricsHandler_NilMetricsPassthrough(t *testing.T) {
	called := false
	handler := MetricsHandler(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.True(t, called)
}
