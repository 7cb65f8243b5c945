// Command pathfinder reads "id,departure,destination" triplets from stdin
// and writes journey results to stdout. With -schedules, each routed journey
// is followed by a SCHEDULE detail line.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"cheminot.railnav.org/internal/batch"
	"cheminot.railnav.org/internal/metrics"
	"cheminot.railnav.org/internal/schedule"
	"cheminot.railnav.org/internal/scoring"
	"cheminot.railnav.org/internal/stations"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("pathfinder", flag.ExitOnError)
	stationsPath := fs.String("stations", "data/stations.csv", "Path to the stations CSV")
	gtfsDir := fs.String("gtfs-dir", "", "Directory holding extracted GTFS tables")
	gtfsZip := fs.String("gtfs-zip", "", "Path to a zipped GTFS feed")
	scoringPath := fs.String("scoring", "", "Path to a YAML scoring overrides file")
	schedules := fs.Bool("schedules", false, "Emit SCHEDULE detail lines for routed journeys")
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := scoring.Default()
	if *scoringPath != "" {
		var err error
		cfg, err = scoring.LoadFile(*scoringPath)
		if err != nil {
			return fmt.Errorf("failed to load scoring config: %w", err)
		}
	}

	stationIdx, err := stations.Load(*stationsPath, cfg.Stations)
	if err != nil {
		return fmt.Errorf("failed to load stations: %w", err)
	}

	var index *schedule.Index
	switch {
	case *gtfsDir != "":
		index, err = schedule.LoadDir(*gtfsDir)
	case *gtfsZip != "":
		index, err = schedule.LoadZip(*gtfsZip)
	default:
		return fmt.Errorf("no schedule feed configured: pass -gtfs-dir or -gtfs-zip")
	}
	if err != nil {
		return fmt.Errorf("failed to load schedule feed: %w", err)
	}

	proc := &batch.PlanProcessor{
		Planner: schedule.NewPlanner(index, stationIdx, cfg),
		Logger:  logger,
		Metrics: metrics.NewWithLogger(logger),
		Verbose: *schedules,
	}
	return proc.Run(os.Stdin, os.Stdout)
}
