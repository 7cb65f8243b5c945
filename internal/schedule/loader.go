package schedule

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/OneBusAway/go-gtfs"
	"github.com/codeGROOVE-dev/retry"
	"github.com/klauspost/compress/gzip"

	"cheminot.railnav.org/internal/logging"
)

// maxFeedSize caps downloaded feeds so a misconfigured URL cannot exhaust
// memory.
const maxFeedSize = 200 * 1024 * 1024

// LoadDir reads the four static tables from an unpacked GTFS directory.
// Each table may be stored as <name>.txt or <name>.txt.gz. A missing table
// or a missing required column is fatal: the caller must fail fast instead
// of serving a partially built index.
func LoadDir(dir string) (*Index, error) {
	logger := slog.Default().With(slog.String("component", "schedule_loader"))

	var tables Tables
	if err := readTable(dir, "stops", func(get rowGetter) error {
		tables.Stops = append(tables.Stops, Stop{
			ID:   get("stop_id"),
			Code: strings.TrimSpace(get("stop_code")),
			Name: get("stop_name"),
		})
		return nil
	}, "stop_id", "stop_name"); err != nil {
		return nil, err
	}

	if err := readTable(dir, "stop_times", func(get rowGetter) error {
		seq, err := strconv.Atoi(strings.TrimSpace(get("stop_sequence")))
		if err != nil {
			// Rows with a non-numeric sequence cannot be ordered; drop them.
			return nil
		}
		tables.StopTimes = append(tables.StopTimes, StopTime{
			TripID:        get("trip_id"),
			StopID:        get("stop_id"),
			StopSequence:  seq,
			ArrivalTime:   get("arrival_time"),
			DepartureTime: get("departure_time"),
		})
		return nil
	}, "trip_id", "stop_id", "stop_sequence", "arrival_time", "departure_time"); err != nil {
		return nil, err
	}

	if err := readTable(dir, "trips", func(get rowGetter) error {
		tables.Trips = append(tables.Trips, Trip{ID: get("trip_id"), RouteID: get("route_id")})
		return nil
	}, "trip_id", "route_id"); err != nil {
		return nil, err
	}

	if err := readTable(dir, "routes", func(get rowGetter) error {
		tables.Routes = append(tables.Routes, Route{ID: get("route_id")})
		return nil
	}, "route_id"); err != nil {
		return nil, err
	}

	logging.LogOperation(logger, "schedule_tables_loaded",
		slog.String("dir", dir),
		slog.Int("stops", len(tables.Stops)),
		slog.Int("stop_times", len(tables.StopTimes)),
		slog.Int("trips", len(tables.Trips)),
		slog.Int("routes", len(tables.Routes)))

	return NewIndex(tables), nil
}

// LoadZip parses a zipped GTFS feed and converts it into the same tables
// the directory loader produces. Duration-based times are re-rendered as
// zero-padded HH:MM:SS strings so lexical comparison stays valid, including
// the >24h overnight notation.
func LoadZip(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS feed: %w", err)
	}
	return indexFromFeed(data)
}

// DownloadAndLoad fetches a zipped GTFS feed over HTTP with retry/backoff
// and builds the index from it.
func DownloadAndLoad(url string) (*Index, error) {
	logger := slog.Default().With(slog.String("component", "schedule_downloader"))

	var body []byte
	err := retry.Do(
		func() error {
			resp, err := http.Get(url)
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(resp.Body, logger, "http_response_body")

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("failed to download GTFS feed: received HTTP status %s", resp.Status)
			}
			body, err = io.ReadAll(io.LimitReader(resp.Body, maxFeedSize+1))
			if err != nil {
				return fmt.Errorf("error reading GTFS feed: %w", err)
			}
			if int64(len(body)) > maxFeedSize {
				return fmt.Errorf("GTFS feed exceeds size limit of %d bytes", maxFeedSize)
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(30*time.Second),
		retry.OnRetry(func(n uint, err error) {
			logging.LogError(logger, "retrying GTFS download", err, slog.Uint64("attempt", uint64(n)))
		}),
	)
	if err != nil {
		return nil, err
	}
	return indexFromFeed(body)
}

func indexFromFeed(data []byte) (*Index, error) {
	staticData, err := gtfs.ParseStatic(data, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS feed: %w", err)
	}

	var tables Tables
	for i := range staticData.Stops {
		s := &staticData.Stops[i]
		tables.Stops = append(tables.Stops, Stop{ID: s.Id, Code: s.Code, Name: s.Name})
	}
	for i := range staticData.Routes {
		tables.Routes = append(tables.Routes, Route{ID: staticData.Routes[i].Id})
	}
	for i := range staticData.Trips {
		t := &staticData.Trips[i]
		routeID := ""
		if t.Route != nil {
			routeID = t.Route.Id
		}
		tables.Trips = append(tables.Trips, Trip{ID: t.ID, RouteID: routeID})
		for _, st := range t.StopTimes {
			if st.Stop == nil {
				continue
			}
			tables.StopTimes = append(tables.StopTimes, StopTime{
				TripID:        t.ID,
				StopID:        st.Stop.Id,
				StopSequence:  st.StopSequence,
				ArrivalTime:   FormatTime(st.ArrivalTime),
				DepartureTime: FormatTime(st.DepartureTime),
			})
		}
	}
	return NewIndex(tables), nil
}

// FormatTime renders a time-of-day duration as a zero-padded HH:MM:SS
// string. Hours pass 24 unchanged for overnight trips.
func FormatTime(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// rowGetter returns a named column of the current row ("" when absent).
type rowGetter func(column string) string

// readTable streams one CSV table, checking required columns up front.
func readTable(dir, name string, visit func(rowGetter) error, required ...string) error {
	f, gz, err := openTable(dir, name)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	var r io.Reader = f
	if gz != nil {
		defer func() { _ = gz.Close() }()
		r = gz
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("error reading %s header: %w", name, err)
	}
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[strings.TrimPrefix(col, "\ufeff")] = i
	}
	for _, col := range required {
		if _, ok := colIdx[col]; !ok {
			return fmt.Errorf("missing column %q in %s table", col, name)
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading %s row: %w", name, err)
		}
		get := func(column string) string {
			i, ok := colIdx[column]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		if err := visit(get); err != nil {
			return err
		}
	}
}

// openTable opens <name>.txt, falling back to <name>.txt.gz.
func openTable(dir, name string) (*os.File, *gzip.Reader, error) {
	plain := filepath.Join(dir, name+".txt")
	if f, err := os.Open(plain); err == nil {
		return f, nil, nil
	}
	compressed := filepath.Join(dir, name+".txt.gz")
	f, err := os.Open(compressed)
	if err != nil {
		return nil, nil, fmt.Errorf("missing %s table in %s: %w", name, dir, err)
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("error reading %s: %w", compressed, err)
	}
	return f, gz, nil
}
