// Package schedule loads static GTFS tables and answers direct and
// one-transfer journey queries over them with explicit, bounded joins.
package schedule

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"cheminot.railnav.org/internal/scoring"
	"cheminot.railnav.org/internal/textnorm"
)

// StopTime is one row of stop_times. Arrival and departure times are
// zero-padded HH:MM:SS strings compared lexically; hours may exceed 24 for
// overnight trips (no special handling beyond the string ordering).
type StopTime struct {
	TripID        string
	StopID        string
	StopSequence  int
	ArrivalTime   string
	DepartureTime string
}

// Tables holds the four parsed static tables before indexing.
type Tables struct {
	Stops     []Stop
	StopTimes []StopTime
	Trips     []Trip
	Routes    []Route
}

// Stop is one row of stops.
type Stop struct {
	ID   string
	Code string
	Name string
}

// Trip is one row of trips.
type Trip struct {
	ID      string
	RouteID string
}

// Route is one row of routes.
type Route struct {
	ID string
}

// Index is the immutable lookup structure over a static schedule. Build it
// once per feed snapshot; a refresh builds a new Index and swaps the
// reference atomically rather than mutating in place.
type Index struct {
	stopNameByID    map[string]string
	stopNormByID    map[string]string
	stopOrder       []string
	routeByTrip     map[string]string
	stopIDsByUIC    map[string][]string
	stopTimesByStop map[string][]StopTime
	stopTimesByTrip map[string][]StopTime
	caps            scoring.Journeys
}

var uicPattern = regexp.MustCompile(`^\d{8}$`)
var embeddedUICPattern = regexp.MustCompile(`\d{8}`)

// NewIndex builds all lookup maps from parsed tables using the default
// journey caps.
func NewIndex(tables Tables) *Index {
	return NewIndexWithCaps(tables, scoring.Default().Journeys)
}

// NewIndexWithCaps builds the index with explicit journey candidate caps.
func NewIndexWithCaps(tables Tables, caps scoring.Journeys) *Index {
	idx := &Index{
		caps:            caps,
		stopNameByID:    make(map[string]string, len(tables.Stops)),
		stopNormByID:    make(map[string]string, len(tables.Stops)),
		routeByTrip:     make(map[string]string, len(tables.Trips)),
		stopIDsByUIC:    make(map[string][]string),
		stopTimesByStop: make(map[string][]StopTime),
		stopTimesByTrip: make(map[string][]StopTime),
	}

	for _, s := range tables.Stops {
		if _, seen := idx.stopNameByID[s.ID]; !seen {
			idx.stopOrder = append(idx.stopOrder, s.ID)
		}
		idx.stopNameByID[s.ID] = s.Name
		idx.stopNormByID[s.ID] = textnorm.Normalize(s.Name)
	}

	for _, t := range tables.Trips {
		idx.routeByTrip[t.ID] = t.RouteID
	}

	// UIC map: an explicit 8-digit stop_code column wins; when no stop_code
	// yields a single match, fall back to any 8-digit run embedded in the
	// stop_id string.
	for _, s := range tables.Stops {
		if uicPattern.MatchString(s.Code) {
			idx.stopIDsByUIC[s.Code] = appendUnique(idx.stopIDsByUIC[s.Code], s.ID)
		}
	}
	if len(idx.stopIDsByUIC) == 0 {
		for _, s := range tables.Stops {
			if uic := embeddedUICPattern.FindString(s.ID); uic != "" {
				idx.stopIDsByUIC[uic] = appendUnique(idx.stopIDsByUIC[uic], s.ID)
			}
		}
	}

	for _, st := range tables.StopTimes {
		idx.stopTimesByStop[st.StopID] = append(idx.stopTimesByStop[st.StopID], st)
		idx.stopTimesByTrip[st.TripID] = append(idx.stopTimesByTrip[st.TripID], st)
	}
	for trip := range idx.stopTimesByTrip {
		rows := idx.stopTimesByTrip[trip]
		sort.SliceStable(rows, func(a, b int) bool {
			return rows[a].StopSequence < rows[b].StopSequence
		})
	}

	return idx
}

// StopName returns the display name for a stop id, falling back to the id
// itself for unknown stops.
func (idx *Index) StopName(stopID string) string {
	if name, ok := idx.stopNameByID[stopID]; ok && name != "" {
		return name
	}
	return stopID
}

// RouteForTrip returns the route id of a trip, or "" when unknown.
func (idx *Index) RouteForTrip(tripID string) string {
	return idx.routeByTrip[tripID]
}

// Stats summarizes the index for debugging.
func (idx *Index) Stats() map[string]int {
	stopTimes := 0
	for _, rows := range idx.stopTimesByStop {
		stopTimes += len(rows)
	}
	return map[string]int{
		"stops":      len(idx.stopNameByID),
		"trips":      len(idx.stopTimesByTrip),
		"routes":     len(idx.routeByTrip),
		"stop_times": stopTimes,
		"uic_codes":  len(idx.stopIDsByUIC),
	}
}

// uicHintPattern splits a UIC hint field that may carry several codes.
var uicHintSeparator = regexp.MustCompile(`[;,\s]+`)

// ResolveStopIDs maps a station to schedule stop ids. A resolvable UIC hint
// wins; otherwise stop names are matched by normalized substring. The
// result is capped at max entries.
func (idx *Index) ResolveStopIDs(stationName, uicHint string, max int) []string {
	var out []string

	if uicHint != "" {
		for _, part := range uicHintSeparator.Split(uicHint, -1) {
			if !uicPattern.MatchString(part) {
				continue
			}
			for _, id := range idx.stopIDsByUIC[part] {
				out = appendUnique(out, id)
			}
		}
	}
	if len(out) > 0 {
		return capSlice(out, max)
	}

	q := textnorm.Normalize(stationName)
	if q == "" {
		return nil
	}
	for _, id := range idx.stopOrder {
		if strings.Contains(idx.stopNormByID[id], q) {
			out = append(out, id)
			if max > 0 && len(out) >= max {
				break
			}
		}
	}
	return out
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func capSlice(list []string, max int) []string {
	if max > 0 && len(list) > max {
		return list[:max]
	}
	return list
}

// Validate checks referential sanity useful in tests and debug dumps.
func (idx *Index) Validate() error {
	for trip, rows := range idx.stopTimesByTrip {
		for i := 1; i < len(rows); i++ {
			if rows[i].StopSequence == rows[i-1].StopSequence {
				return fmt.Errorf("trip %s has duplicate stop_sequence %d", trip, rows[i].StopSequence)
			}
		}
	}
	return nil
}
