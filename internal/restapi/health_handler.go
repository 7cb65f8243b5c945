package restapi

import (
	"encoding/json"
	"net/http"
)

// HealthResponse represents the JSON response from the health endpoint.
type HealthResponse struct {
	Status string         `json:"status"`
	Detail string         `json:"detail,omitempty"`
	Feed   map[string]int `json:"feed,omitempty"`
}

// healthHandler reports readiness. The service is ready once the station
// table and the schedule index are both loaded; an empty schedule index
// means the instance would answer every journey with NO_SCHEDULE_FOUND,
// so it is reported as unavailable and kept out of rotation.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if api.Application == nil || api.Stations == nil || api.Schedule == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: "unavailable",
			Detail: "data indexes not initialized",
		})
		return
	}

	stats := api.Schedule.Stats()
	if api.Stations.Len() == 0 || stats["stops"] == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: "starting",
			Detail: "station or schedule data is empty",
			Feed:   stats,
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{
		Status: "ok",
		Feed:   stats,
	})
}
