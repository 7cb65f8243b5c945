// Package webui serves the developer-facing debug pages and the static
// public site.
package webui

import (
	"net/http"

	"cheminot.railnav.org/internal/app"
)

// WebUI bundles the handlers that are not part of the JSON API.
type WebUI struct {
	*app.Application
}

// NewWebUI builds the web UI over a constructed application.
func NewWebUI(application *app.Application) *WebUI {
	return &WebUI{Application: application}
}

// SetRoutes registers the web UI handlers on the mux.
func (webUI *WebUI) SetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /debug", webUI.debugIndexHandler)
	mux.HandleFunc("GET /public/", webUI.staticSiteHandler)
}
