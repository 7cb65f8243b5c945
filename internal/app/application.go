package app

import (
	"log/slog"

	"cheminot.railnav.org/internal/appconf"
	"cheminot.railnav.org/internal/clock"
	"cheminot.railnav.org/internal/metrics"
	"cheminot.railnav.org/internal/resolver"
	"cheminot.railnav.org/internal/schedule"
	"cheminot.railnav.org/internal/scoring"
	"cheminot.railnav.org/internal/stations"
)

// Application holds the dependencies shared by HTTP handlers, helpers,
// and middleware: the loaded data indexes, the resolver and planner built
// over them, plus the ambient clock, logger, and metrics.
type Application struct {
	Config   appconf.Config
	Scoring  scoring.Config
	Logger   *slog.Logger
	Clock    clock.Clock
	Metrics  *metrics.Metrics
	Stations *stations.Index
	Schedule *schedule.Index
	Resolver *resolver.Resolver
	Planner  *schedule.Planner
}
