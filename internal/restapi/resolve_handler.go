package restapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"cheminot.railnav.org/internal/models"
	"cheminot.railnav.org/internal/resolver"
)

// resolveHandler turns one French sentence into a scored travel order.
func (api *RestAPI) resolveHandler(w http.ResponseWriter, r *http.Request) {
	if api.RequestHasInvalidAPIKey(r) {
		api.sendUnauthorized(w, r)
		return
	}

	var req models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.badRequestResponse(w, r, "request body must be valid JSON")
		return
	}
	if err := validator.New().Struct(&req); err != nil {
		api.badRequestResponse(w, r, "sentence is required")
		return
	}

	result := api.resolve(req)
	if api.Metrics != nil {
		outcome := "resolved"
		if !result.OK {
			outcome = "invalid"
		}
		api.Metrics.ObserveResolution(outcome, result.Confidence)
	}

	api.sendResponse(w, r, models.NewOKResponse(result, api.Clock))
}

// resolve serves from the memoization cache when possible. Mode is part of
// the key so a mode switch cannot surface stale results.
func (api *RestAPI) resolve(req models.ResolveRequest) resolver.Result {
	key := req.Mode + "|" + strconv.FormatBool(req.Helpful) + "|" + req.Sentence
	if cached, ok := api.resolveCache.GetIfPresent(key); ok {
		return cached
	}

	var result resolver.Result
	if req.Mode == "" {
		result = api.Resolver.Resolve(req.Sentence, req.Helpful)
	} else {
		result = api.Resolver.ResolveWithMode(resolver.Mode(req.Mode), req.Sentence, req.Helpful)
	}
	api.resolveCache.Set(key, result)
	return result
}
