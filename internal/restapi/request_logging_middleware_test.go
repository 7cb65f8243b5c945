package restapi

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"cheminot.railnav.org/internal/logging"
)

func TestRequestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RequestIDMiddleware(NewRequestLoggingMiddleware(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Downstream handlers see the logger via context.
			assert.Same(t, logger, logging.FromContext(r.Context()))
			w.WriteHeader(http.StatusTeapot)
		})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/stations", nil))

	out := buf.String()
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/api/v1/stations")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "request_id=")
	assert.Contains(t, out, "component=http_server")
}
