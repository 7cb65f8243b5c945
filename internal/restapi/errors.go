package restapi

import (
	"net/http"

	"cheminot.railnav.org/internal/logging"
)

// serverErrorResponse logs the error and sends a 500 without leaking the
// internal message to the client.
func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.Logger, "handler error", err)
	api.sendError(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func (api *RestAPI) badRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.sendError(w, r, http.StatusBadRequest, message)
}
