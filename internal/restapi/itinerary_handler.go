package restapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"cheminot.railnav.org/internal/itinerary"
	"cheminot.railnav.org/internal/models"
	"cheminot.railnav.org/internal/stations"
)

// itineraryHandler builds a labeled, distance-annotated route through
// stations referenced by UIC code.
func (api *RestAPI) itineraryHandler(w http.ResponseWriter, r *http.Request) {
	if api.RequestHasInvalidAPIKey(r) {
		api.sendUnauthorized(w, r)
		return
	}

	var req models.ItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.badRequestResponse(w, r, "request body must be valid JSON")
		return
	}
	if err := validator.New().Struct(&req); err != nil {
		api.badRequestResponse(w, r, "departureUic and arrivalUic must be 8-digit codes")
		return
	}

	departure, ok := api.Stations.FindByUIC(req.DepartureUIC)
	if !ok {
		api.sendNotFound(w, r)
		return
	}
	arrival, ok := api.Stations.FindByUIC(req.ArrivalUIC)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	var via []stations.Station
	if req.ViaUIC != "" {
		station, ok := api.Stations.FindByUIC(req.ViaUIC)
		if !ok {
			api.sendNotFound(w, r)
			return
		}
		via = append(via, station)
	}

	route := itinerary.Build(departure, via, arrival)
	api.sendResponse(w, r, models.NewOKResponse(route, api.Clock))
}
