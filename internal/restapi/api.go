// Package restapi exposes the resolver, station catalog, and journey
// planner over HTTP.
package restapi

import (
	"net/http"
	"time"

	"github.com/maypok86/otter/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cheminot.railnav.org/internal/app"
	"cheminot.railnav.org/internal/resolver"
)

const (
	resolveCacheSize = 4096
	resolveCacheTTL  = 5 * time.Minute

	// stationCacheSeconds governs client-side caching of the station
	// catalog endpoints; the catalog only changes on feed reload.
	stationCacheSeconds = 3600
)

// RestAPI carries the application plus handler-local state.
type RestAPI struct {
	*app.Application

	// resolveCache memoizes resolutions per (sentence, helpful) pair.
	// Resolution is deterministic for a given data snapshot, so entries
	// only expire to bound staleness across feed reloads.
	resolveCache *otter.Cache[string, resolver.Result]
}

// NewRestAPI builds the API surface over a fully constructed application.
func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		resolveCache: otter.Must(&otter.Options[string, resolver.Result]{
			MaximumSize:      resolveCacheSize,
			ExpiryCalculator: otter.ExpiryWriting[string, resolver.Result](resolveCacheTTL),
		}),
	}
}

// SetRoutes registers all handlers on the mux.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/health", api.healthHandler)
	mux.HandleFunc("POST /api/v1/resolve", api.resolveHandler)
	mux.Handle("GET /api/v1/stations", CacheControlMiddleware(stationCacheSeconds, http.HandlerFunc(api.stationsHandler)))
	mux.Handle("GET /api/v1/stations-near", CacheControlMiddleware(stationCacheSeconds, http.HandlerFunc(api.stationsNearHandler)))
	mux.HandleFunc("POST /api/v1/itinerary", api.itineraryHandler)
	mux.HandleFunc("GET /api/v1/journeys", api.journeysHandler)

	if api.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(api.Metrics.Registry, promhttp.HandlerOpts{}))
	}
}
