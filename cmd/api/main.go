package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cheminot.railnav.org/internal/appconf"
	"cheminot.railnav.org/internal/restapi"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("api", flag.ExitOnError)

	configPath := fs.String("config", "", "Path to a JSON config file (overrides env and flags)")
	port := fs.Int("port", 0, "API server port")
	env := fs.String("env", "", "Environment (development|test|production)")
	apiKeys := fs.String("api-keys", "", "Comma separated list of valid API keys")
	rateLimit := fs.Int("rate-limit", 0, "Requests per second allowed per API key")
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	citiesPath := fs.String("cities", "", "Path to the known-cities list")
	stationsPath := fs.String("stations", "", "Path to the stations CSV")
	gtfsDir := fs.String("gtfs-dir", "", "Directory holding extracted GTFS tables")
	gtfsURL := fs.String("gtfs-url", "", "URL or local path of a zipped GTFS feed")
	scoringPath := fs.String("scoring", "", "Path to a YAML scoring overrides file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := appconf.LoadDotEnv(""); err != nil {
		return err
	}

	var cfg appconf.Config
	if *configPath != "" {
		jsonConfig, err := appconf.LoadFromFile(*configPath)
		if err != nil {
			return err
		}
		cfg = jsonConfig.ToAppConfig()
	} else {
		cfg = appconf.FromEnv()
		if *port != 0 {
			cfg.Port = *port
		}
		if *env != "" {
			cfg.Env = appconf.EnvFromString(*env)
		}
		if *apiKeys != "" {
			cfg.ApiKeys = ParseAPIKeys(*apiKeys)
		}
		if *rateLimit != 0 {
			cfg.RateLimit = *rateLimit
		}
		if *verbose {
			cfg.Verbose = true
		}
		if *citiesPath != "" {
			cfg.CitiesPath = *citiesPath
		}
		if *stationsPath != "" {
			cfg.StationsPath = *stationsPath
		}
		if *gtfsDir != "" {
			cfg.GTFSDir = *gtfsDir
		}
		if *gtfsURL != "" {
			cfg.GTFSURL = *gtfsURL
		}
		if *scoringPath != "" {
			cfg.ScoringPath = *scoringPath
		}
	}

	coreApp, err := BuildApplication(cfg)
	if err != nil {
		return err
	}

	srv, rateLimiter := CreateServer(coreApp, cfg)
	return serve(srv, rateLimiter, coreApp.Logger, cfg)
}

func serve(srv *http.Server, rateLimiter *restapi.RateLimitMiddleware, logger *slog.Logger, cfg appconf.Config) error {
	shutdownErr := make(chan error, 1)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logger.Info("shutting down server", slog.String("signal", s.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server",
		slog.String("addr", srv.Addr),
		slog.String("env", cfg.Env.String()))

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		return err
	}
	rateLimiter.Stop()

	logger.Info("server stopped", slog.String("addr", srv.Addr))
	return nil
}
