package restapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"cheminot.railnav.org/internal/models"
)

// journeysHandler plans a journey between two cities, trying direct trips
// before one-transfer combinations.
func (api *RestAPI) journeysHandler(w http.ResponseWriter, r *http.Request) {
	if api.RequestHasInvalidAPIKey(r) {
		api.sendUnauthorized(w, r)
		return
	}

	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		api.badRequestResponse(w, r, "from and to parameters are required")
		return
	}

	start := time.Now()
	result := api.Planner.Plan(uuid.NewString(), from, to)
	if api.Metrics != nil {
		api.Metrics.JourneySearchTime.Observe(time.Since(start).Seconds())
		api.Metrics.ObserveJourney(string(result.State))
	}

	api.sendResponse(w, r, models.NewOKResponse(result, api.Clock))
}
