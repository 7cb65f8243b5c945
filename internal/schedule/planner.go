package schedule

import (
	"strings"

	"cheminot.railnav.org/internal/scoring"
	"cheminot.railnav.org/internal/stations"
)

// PathState is the terminal state of one journey lookup.
type PathState string

const (
	// StateInvalidPath marks a malformed input triplet; it never enters the
	// schedule lookup.
	StateInvalidPath PathState = "INVALID_PATH"
	// StateDirect means a single-trip journey was found.
	StateDirect PathState = "DIRECT"
	// StateOneTransfer means a two-leg journey was found.
	StateOneTransfer PathState = "ONE_TRANSFER"
	// StateNoScheduleFound means both searches came up empty. This is a
	// normal outcome, not an error.
	StateNoScheduleFound PathState = "NO_SCHEDULE_FOUND"
)

// PlanResult describes where the per-triplet state machine ended up.
type PlanResult struct {
	ID            string       `json:"id"`
	State         PathState    `json:"state"`
	DepartureCity string       `json:"departureCity,omitempty"`
	ArrivalCity   string       `json:"arrivalCity,omitempty"`
	Direct        *Direct      `json:"direct,omitempty"`
	Transfer      *OneTransfer `json:"transfer,omitempty"`
}

// Planner drives the combined lookup: hub station per city, stop id
// resolution, then direct before one-transfer search. It is immutable and
// safe for concurrent use.
type Planner struct {
	index    *Index
	stations *stations.Index
	hubCfg   scoring.Hub
	caps     scoring.Journeys
}

// NewPlanner wires a schedule index and a station table together.
func NewPlanner(index *Index, stationIdx *stations.Index, cfg scoring.Config) *Planner {
	return &Planner{
		index:    index,
		stations: stationIdx,
		hubCfg:   cfg.Hub,
		caps:     cfg.Journeys,
	}
}

// ParseTriplet splits an "<id>,<departureCity>,<arrivalCity>" line. It
// returns ok=false for anything malformed (wrong field count or a blank
// field); such lines map to StateInvalidPath.
func ParseTriplet(line string) (id, dep, dest string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", "", "", false
	}
	parts := strings.SplitN(line, ",", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	id = strings.TrimSpace(parts[0])
	dep = strings.TrimSpace(parts[1])
	dest = strings.TrimSpace(parts[2])
	if id == "" || dep == "" || dest == "" {
		return "", "", "", false
	}
	return id, dep, dest, true
}

// Plan runs the state machine for one triplet. Degradation order is fixed:
// direct, then one transfer, then NO_SCHEDULE_FOUND; nothing in that chain
// raises.
func (p *Planner) Plan(id, depCity, destCity string) PlanResult {
	if id == "" || depCity == "" || destCity == "" {
		return PlanResult{ID: id, State: StateInvalidPath, DepartureCity: depCity, ArrivalCity: destCity}
	}

	depUIC, _ := HubUIC(depCity, p.stations, p.hubCfg)
	destUIC, _ := HubUIC(destCity, p.stations, p.hubCfg)

	fromIDs := p.index.ResolveStopIDs(depCity, depUIC, p.caps.MaxStopIDs)
	toIDs := p.index.ResolveStopIDs(destCity, destUIC, p.caps.MaxStopIDs)

	if direct := p.index.FindDirect(fromIDs, toIDs, 1); len(direct) > 0 {
		return PlanResult{
			ID:            id,
			State:         StateDirect,
			DepartureCity: depCity,
			ArrivalCity:   destCity,
			Direct:        &direct[0],
		}
	}

	if transfers := p.index.FindOneTransfer(fromIDs, toIDs, 1, p.caps.MaxPerLeg); len(transfers) > 0 {
		return PlanResult{
			ID:            id,
			State:         StateOneTransfer,
			DepartureCity: depCity,
			ArrivalCity:   destCity,
			Transfer:      &transfers[0],
		}
	}

	return PlanResult{ID: id, State: StateNoScheduleFound, DepartureCity: depCity, ArrivalCity: destCity}
}
