// Command resolver reads "id,sentence" lines from stdin and writes the
// resolved "id,departure,destination" lines to stdout.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"cheminot.railnav.org/internal/batch"
	"cheminot.railnav.org/internal/cities"
	"cheminot.railnav.org/internal/citymatch"
	"cheminot.railnav.org/internal/metrics"
	"cheminot.railnav.org/internal/resolver"
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
	fs := flag.NewFlagSet("resolver", flag.ExitOnError)
	citiesPath := fs.String("cities", "data/cities.txt", "Path to the known-cities list")
	stationsPath := fs.String("stations", "data/stations.csv", "Path to the stations CSV")
	scoringPath := fs.String("scoring", "", "Path to a YAML scoring overrides file")
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

	registry, err := cities.Load(*citiesPath)
	if err != nil {
		return fmt.Errorf("failed to load cities list: %w", err)
	}
	stationIdx, err := stations.Load(*stationsPath, cfg.Stations)
	if err != nil {
		return fmt.Errorf("failed to load stations: %w", err)
	}

	proc := &batch.ResolveProcessor{
		Resolver: resolver.New(citymatch.New(registry, cfg.Matcher), stationIdx, cfg.Confidence),
		Logger:   logger,
		Metrics:  metrics.NewWithLogger(logger),
	}
	return proc.Run(os.Stdin, os.Stdout)
}
