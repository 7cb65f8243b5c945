package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJourneysHandler_Direct(t *testing.T) {
	_, mux := newTestAPI()

	rec := getPath(t, mux, "/api/v1/journeys?from=Paris&to=Lyon")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "DIRECT", data["state"])

	direct := data["direct"].(map[string]any)
	assert.Equal(t, "T1", direct["tripId"])
	assert.Equal(t, "08:00:00", direct["departureTime"])
	assert.Equal(t, "10:00:00", direct["arrivalTime"])
}

func TestJourneysHandler_OneTransfer(t *testing.T) {
	_, mux := newTestAPI()

	rec := getPath(t, mux, "/api/v1/journeys?from=Paris&to=Marseille")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "ONE_TRANSFER", data["state"])

	transfer := data["transfer"].(map[string]any)
	assert.Equal(t, "Lyon Part Dieu", transfer["transferStopName"])
}

func TestJourneysHandler_NoSchedule(t *testing.T) {
	_, mux := newTestAPI()

	rec := getPath(t, mux, "/api/v1/journeys?from=Paris&to=Nice")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "NO_SCHEDULE_FOUND", data["state"])
}

func TestJourneysHandler_MissingParams(t *testing.T) {
	_, mux := newTestAPI()

	assert.Equal(t, http.StatusBadRequest, getPath(t, mux, "/api/v1/journeys?from=Paris").Code)
	assert.Equal(t, http.StatusBadRequest, getPath(t, mux, "/api/v1/journeys").Code)
}
