// test_helper.go builds a fully wired API over a small in-memory fixture
// for handler and middleware tests.
package restapi

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"cheminot.railnav.org/internal/app"
	"cheminot.railnav.org/internal/appconf"
	"cheminot.railnav.org/internal/cities"
	"cheminot.railnav.org/internal/citymatch"
	"cheminot.railnav.org/internal/clock"
	"cheminot.railnav.org/internal/metrics"
	"cheminot.railnav.org/internal/resolver"
	"cheminot.railnav.org/internal/schedule"
	"cheminot.railnav.org/internal/scoring"
	"cheminot.railnav.org/internal/stations"
)

func newTestApplication() *app.Application {
	cfg := scoring.Default()

	stationIdx := stations.FromStations([]stations.Station{
		{Name: "Paris Gare de Lyon", UIC: "87686006", Latitude: 48.8443, Longitude: 2.3744},
		{Name: "Lyon Part Dieu", UIC: "87723197", Latitude: 45.7605, Longitude: 4.8596},
		{Name: "Marseille Saint Charles", UIC: "87751008", Latitude: 43.3032, Longitude: 5.3806},
	}, cfg.Stations)

	scheduleIdx := schedule.NewIndexWithCaps(schedule.Tables{
		Stops: []schedule.Stop{
			{ID: "SP1", Code: "87686006", Name: "Paris Gare de Lyon"},
			{ID: "SL1", Code: "87723197", Name: "Lyon Part Dieu"},
			{ID: "SM1", Code: "87751008", Name: "Marseille Saint Charles"},
		},
		Trips:  []schedule.Trip{{ID: "T1", RouteID: "R1"}, {ID: "T2", RouteID: "R2"}},
		Routes: []schedule.Route{{ID: "R1"}, {ID: "R2"}},
		StopTimes: []schedule.StopTime{
			{TripID: "T1", StopID: "SP1", StopSequence: 1, ArrivalTime: "08:00:00", DepartureTime: "08:00:00"},
			{TripID: "T1", StopID: "SL1", StopSequence: 2, ArrivalTime: "10:00:00", DepartureTime: "10:05:00"},
			{TripID: "T2", StopID: "SL1", StopSequence: 1, ArrivalTime: "11:00:00", DepartureTime: "11:00:00"},
			{TripID: "T2", StopID: "SM1", StopSequence: 2, ArrivalTime: "13:00:00", DepartureTime: "13:00:00"},
		},
	}, cfg.Journeys)

	registry := cities.FromNames([]string{"Paris", "Lyon", "Marseille"})
	matcher := citymatch.New(registry, cfg.Matcher)

	return &app.Application{
		Config:   appconf.Config{Port: 4000, Env: appconf.Test, RateLimit: 100},
		Scoring:  cfg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:    clock.NewMockClock(time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)),
		Metrics:  metrics.New(),
		Stations: stationIdx,
		Schedule: scheduleIdx,
		Resolver: resolver.New(matcher, stationIdx, cfg.Confidence),
		Planner:  schedule.NewPlanner(scheduleIdx, stationIdx, cfg),
	}
}

func newTestAPI() (*RestAPI, *http.ServeMux) {
	api := NewRestAPI(newTestApplication())
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	return api, mux
}
