package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"cheminot.railnav.org/internal/app"
	"cheminot.railnav.org/internal/appconf"
	"cheminot.railnav.org/internal/cities"
	"cheminot.railnav.org/internal/citymatch"
	"cheminot.railnav.org/internal/clock"
	"cheminot.railnav.org/internal/metrics"
	"cheminot.railnav.org/internal/resolver"
	"cheminot.railnav.org/internal/restapi"
	"cheminot.railnav.org/internal/schedule"
	"cheminot.railnav.org/internal/scoring"
	"cheminot.railnav.org/internal/stations"
	"cheminot.railnav.org/internal/webui"
)

// ParseAPIKeys splits a comma-separated list of API keys, trimming
// whitespace around each entry. An empty input yields an empty slice.
func ParseAPIKeys(input string) []string {
	if input == "" {
		return []string{}
	}
	parts := strings.Split(input, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// BuildApplication loads the reference data named in the config and wires
// the resolver and planner over it.
func BuildApplication(cfg appconf.Config) (*app.Application, error) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	scoringCfg := scoring.Default()
	if cfg.ScoringPath != "" {
		var err error
		scoringCfg, err = scoring.LoadFile(cfg.ScoringPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load scoring config: %w", err)
		}
	}

	if cfg.CitiesPath == "" {
		return nil, fmt.Errorf("no cities list configured")
	}
	registry, err := cities.Load(cfg.CitiesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load cities list: %w", err)
	}

	if cfg.StationsPath == "" {
		return nil, fmt.Errorf("no stations file configured")
	}
	stationIdx, err := stations.Load(cfg.StationsPath, scoringCfg.Stations)
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}

	scheduleIdx, err := loadSchedule(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule feed: %w", err)
	}

	m := metrics.NewWithLogger(logger)
	stats := scheduleIdx.Stats()
	m.SetFeedStats(stats["stops"], stats["stop_times"])

	matcher := citymatch.New(registry, scoringCfg.Matcher)

	coreApp := &app.Application{
		Config:   cfg,
		Scoring:  scoringCfg,
		Logger:   logger,
		Clock:    clock.RealClock{},
		Metrics:  m,
		Stations: stationIdx,
		Schedule: scheduleIdx,
		Resolver: resolver.New(matcher, stationIdx, scoringCfg.Confidence),
		Planner:  schedule.NewPlanner(scheduleIdx, stationIdx, scoringCfg),
	}
	return coreApp, nil
}

func loadSchedule(cfg appconf.Config) (*schedule.Index, error) {
	switch {
	case cfg.GTFSDir != "":
		return schedule.LoadDir(cfg.GTFSDir)
	case cfg.GTFSURL != "":
		// A local zip path is accepted in place of a URL so tests and
		// offline deployments can skip the download.
		if _, err := os.Stat(cfg.GTFSURL); err == nil {
			return schedule.LoadZip(cfg.GTFSURL)
		}
		return schedule.DownloadAndLoad(cfg.GTFSURL)
	default:
		return nil, fmt.Errorf("no schedule feed configured")
	}
}

// CreateServer assembles the HTTP server: routes from the REST API and the
// web UI, wrapped in the middleware chain. The returned rate limiter must
// be stopped when the server shuts down.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*http.Server, *restapi.RateLimitMiddleware) {
	mux := http.NewServeMux()

	api := restapi.NewRestAPI(coreApp)
	api.SetRoutes(mux)

	ui := webui.NewWebUI(coreApp)
	ui.SetRoutes(mux)

	rateLimiter := restapi.NewRateLimitMiddleware(cfg.RateLimit, time.Second, nil, coreApp.Clock)

	var handler http.Handler = mux
	handler = restapi.NewRequestLoggingMiddleware(coreApp.Logger)(handler)
	handler = restapi.MetricsHandler(coreApp.Metrics)(handler)
	handler = rateLimiter.Handler()(handler)
	handler = restapi.RequestIDMiddleware(handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return srv, rateLimiter
}
