// Package stations provides the station table and its lookup index: ranked
// whole-word candidate search for a city, free-text scanning, UIC lookup,
// and rtree-backed proximity queries. The index is built once and is
// immutable afterwards.
package stations

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tidwall/rtree"

	"cheminot.railnav.org/internal/scoring"
	"cheminot.railnav.org/internal/textnorm"
)

// Station is one row of the station table.
type Station struct {
	Name      string  `json:"name"`
	UIC       string  `json:"uicCode"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Index is the immutable station lookup structure.
type Index struct {
	stations []Station
	norms    []string
	byUIC    map[string]int
	tree     rtree.RTreeG[int]
	cfg      scoring.Stations
}

var requiredColumns = []string{"station_name", "uic_code", "latitude", "longitude"}

// Load reads the station CSV and builds the index. A missing required
// column is fatal: the caller must not serve with a partially built index.
func Load(path string, cfg scoring.Stations) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening stations file: %w", err)
	}
	defer func() { _ = f.Close() }()

	idx, err := Read(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("error loading stations from %s: %w", path, err)
	}
	return idx, nil
}

// Read parses station CSV data from r and builds the index.
func Read(r io.Reader, cfg scoring.Stations) (*Index, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading station header: %w", err)
	}
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[col] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing column %q in station table", col)
		}
	}

	idx := &Index{byUIC: make(map[string]int), cfg: cfg}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading station row: %w", err)
		}
		name := field(record, colIdx["station_name"])
		if name == "" {
			continue
		}
		lat, latErr := strconv.ParseFloat(field(record, colIdx["latitude"]), 64)
		lon, lonErr := strconv.ParseFloat(field(record, colIdx["longitude"]), 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		idx.add(Station{
			Name:      name,
			UIC:       field(record, colIdx["uic_code"]),
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return idx, nil
}

// FromStations builds an index from an in-memory station list.
func FromStations(list []Station, cfg scoring.Stations) *Index {
	idx := &Index{byUIC: make(map[string]int, len(list)), cfg: cfg}
	for _, s := range list {
		idx.add(s)
	}
	return idx
}

func (idx *Index) add(s Station) {
	i := len(idx.stations)
	idx.stations = append(idx.stations, s)
	idx.norms = append(idx.norms, textnorm.Normalize(s.Name))
	if s.UIC != "" {
		if _, exists := idx.byUIC[s.UIC]; !exists {
			idx.byUIC[s.UIC] = i
		}
	}
	pt := [2]float64{s.Longitude, s.Latitude}
	idx.tree.Insert(pt, pt, i)
}

// Len returns the number of indexed stations.
func (idx *Index) Len() int {
	return len(idx.stations)
}

// All returns the stations in table order. The returned slice is shared and
// must not be mutated.
func (idx *Index) All() []Station {
	return idx.stations
}

// FindByUIC returns the first station with the given UIC code.
func (idx *Index) FindByUIC(code string) (Station, bool) {
	if code == "" {
		return Station{}, false
	}
	i, ok := idx.byUIC[code]
	if !ok {
		return Station{}, false
	}
	return idx.stations[i], true
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return record[i]
}
