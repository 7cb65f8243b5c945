package webui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"cheminot.railnav.org/internal/app"
	"cheminot.railnav.org/internal/appconf"
	"cheminot.railnav.org/internal/schedule"
	"cheminot.railnav.org/internal/scoring"
	"cheminot.railnav.org/internal/stations"
)

func newDevWebUI() *WebUI {
	cfg := scoring.Default()
	return NewWebUI(&app.Application{
		Config:  appconf.Config{Env: appconf.Development},
		Scoring: cfg,
		Stations: stations.FromStations([]stations.Station{
			{Name: "Lyon Part Dieu", UIC: "87723197", Latitude: 45.7605, Longitude: 4.8596},
		}, cfg.Stations),
		Schedule: schedule.NewIndexWithCaps(schedule.Tables{}, cfg.Journeys),
	})
}

func TestDebugIndexHandler_ProductionReturns404(t *testing.T) {
	webUI := &WebUI{
		Application: &app.Application{
			Config: appconf.Config{Env: appconf.Production},
		},
	}

	req := httptest.NewRequest("GET", "/debug?dataType=stations", nil)
	rr := httptest.NewRecorder()

	webUI.debugIndexHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code, "Should return 404 in Production")
}

func TestDebugIndexHandler_Stations(t *testing.T) {
	webUI := newDevWebUI()

	req := httptest.NewRequest("GET", "/debug?dataType=stations", nil)
	rr := httptest.NewRecorder()

	webUI.debugIndexHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Lyon Part Dieu")
}

func TestDebugIndexHandler_UnknownDataType(t *testing.T) {
	webUI := newDevWebUI()

	req := httptest.NewRequest("GET", "/debug?dataType=nope", nil)
	rr := httptest.NewRecorder()

	webUI.debugIndexHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Choose a data type")
}
