package restapi

import (
	"net/http"
	"strconv"
	"strings"

	"cheminot.railnav.org/internal/models"
)

const defaultNearRadiusMeters = 20000.0

// stationsHandler searches the station catalog by city or free text.
// An explicit uic parameter wins over the text query.
func (api *RestAPI) stationsHandler(w http.ResponseWriter, r *http.Request) {
	if api.RequestHasInvalidAPIKey(r) {
		api.sendUnauthorized(w, r)
		return
	}

	if uic := strings.TrimSpace(r.URL.Query().Get("uic")); uic != "" {
		station, ok := api.Stations.FindByUIC(uic)
		if !ok {
			api.sendNotFound(w, r)
			return
		}
		api.sendResponse(w, r, models.NewOKResponse(station, api.Clock))
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		api.badRequestResponse(w, r, "q or uic parameter is required")
		return
	}

	limit := queryInt(r, "limit", api.Scoring.Confidence.CandidateLimit)
	candidates := api.Stations.CandidatesForCity(query, limit)
	if len(candidates) == 0 {
		candidates = api.Stations.CandidatesFromFreeText(query, limit)
	}

	api.sendResponse(w, r, models.NewOKResponse(candidates, api.Clock))
}

// stationsNearHandler returns stations within a radius of a coordinate,
// closest first.
func (api *RestAPI) stationsNearHandler(w http.ResponseWriter, r *http.Request) {
	if api.RequestHasInvalidAPIKey(r) {
		api.sendUnauthorized(w, r)
		return
	}

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		api.badRequestResponse(w, r, "lat and lon parameters are required")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		api.badRequestResponse(w, r, "lat or lon out of range")
		return
	}

	radius := defaultNearRadiusMeters
	if raw := r.URL.Query().Get("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			api.badRequestResponse(w, r, "radius must be a positive number of meters")
			return
		}
		radius = parsed
	}

	limit := queryInt(r, "limit", api.Scoring.Confidence.CandidateLimit)
	nearby := api.Stations.Near(lat, lon, radius, limit)

	api.sendResponse(w, r, models.NewOKResponse(nearby, api.Clock))
}

// queryInt reads a positive integer query parameter, falling back to a
// default on absence or garbage.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
