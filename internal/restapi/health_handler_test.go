package restapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cheminot.railnav.org/internal/schedule"
	"cheminot.railnav.org/internal/scoring"
	"cheminot.railnav.org/internal/stations"
)

func TestHealthHandler_OK(t *testing.T) {
	_, mux := newTestAPI()

	rec := getPath(t, mux, "/api/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Feed["stops"])
}

func TestHealthHandler_EmptyData(t *testing.T) {
	api, _ := newTestAPI()
	cfg := scoring.Default()
	api.Stations = stations.FromStations(nil, cfg.Stations)
	api.Schedule = schedule.NewIndexWithCaps(schedule.Tables{}, cfg.Journeys)

	mux := http.NewServeMux()
	api.SetRoutes(mux)

	rec := getPath(t, mux, "/api/v1/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "starting", resp.Status)
}

func TestHealthHandler_NotInitialized(t *testing.T) {
	api, _ := newTestAPI()
	api.Schedule = nil

	mux := http.NewServeMux()
	api.SetRoutes(mux)

	rec := getPath(t, mux, "/api/v1/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "unavailable", resp.Status)
}
