// Package batch implements the line-oriented stdin/stdout protocols for
// resolving sentences and planning journeys in bulk.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"cheminot.railnav.org/internal/metrics"
	"cheminot.railnav.org/internal/resolver"
	"cheminot.railnav.org/internal/schedule"
)

// maxLineSize bounds a single input line. Anything longer is an input error.
const maxLineSize = 1 << 20

// Marker tokens emitted on the output stream.
const (
	markerInvalid       = "INVALID"
	markerInvalidFormat = "INVALID_FORMAT"
	scheduleDirect      = "DIRECT"
	scheduleOneTransfer = "1_TRANSFER"
)

// ResolveProcessor streams "<id>,<sentence>" lines through a resolver and
// writes one "<id>,<departure>,<arrival>" or "<id>,INVALID" line per input.
type ResolveProcessor struct {
	Resolver *resolver.Resolver
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// Run consumes input until EOF. Blank lines are skipped; a line with no
// comma is echoed back with an INVALID_FORMAT marker so the caller can
// correlate rejects with inputs.
func (p *ResolveProcessor) Run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	w := bufio.NewWriter(out)
	defer w.Flush()

	for scanner.Scan() {
		raw := strings.TrimRight(scanner.Text(), "\n")
		if raw == "" {
			continue
		}

		id, sentence, found := strings.Cut(raw, ",")
		if !found {
			fmt.Fprintf(w, "%s,%s\n", raw, markerInvalidFormat)
			continue
		}
		id = strings.TrimSpace(id)
		sentence = strings.TrimSpace(sentence)

		result := p.Resolver.Resolve(sentence, false)
		if !result.OK {
			p.observe("invalid", result.Confidence)
			fmt.Fprintf(w, "%s,%s\n", id, markerInvalid)
			continue
		}

		p.observe("resolved", result.Confidence)
		fmt.Fprintf(w, "%s,%s,%s\n", id, result.Departure, result.Arrival)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return w.Flush()
}

func (p *ResolveProcessor) observe(outcome string, confidence float64) {
	if p.Metrics != nil {
		p.Metrics.ObserveResolution(outcome, confidence)
	}
}

// PlanProcessor streams "<id>,<departureCity>,<arrivalCity>" triplets
// through a journey planner. Each triplet yields one route line:
//
//	<id>,<dep>,<dest>                         direct journey
//	<id>,<dep>,<transferStation>,<dest>       one-transfer journey
//	<id>,NO_SCHEDULE_FOUND,<dep>,<dest>       nothing within one transfer
//
// With Verbose set, each found journey is followed by a SCHEDULE detail
// line carrying times, trip ids and stop names.
type PlanProcessor struct {
	Planner *schedule.Planner
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Verbose bool
}

// Run consumes triplets until EOF. Malformed triplets are dropped after
// being logged; the protocol has no output slot for them.
func (p *PlanProcessor) Run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	w := bufio.NewWriter(out)
	defer w.Flush()

	for scanner.Scan() {
		id, dep, dest, ok := schedule.ParseTriplet(scanner.Text())
		if !ok {
			if p.Logger != nil && strings.TrimSpace(scanner.Text()) != "" {
				p.Logger.Warn("dropping malformed triplet", slog.String("line", scanner.Text()))
			}
			continue
		}

		result := p.Planner.Plan(id, dep, dest)
		if p.Metrics != nil {
			p.Metrics.ObserveJourney(string(result.State))
		}
		p.writeResult(w, result)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return w.Flush()
}

func (p *PlanProcessor) writeResult(w io.Writer, res schedule.PlanResult) {
	switch res.State {
	case schedule.StateDirect:
		fmt.Fprintf(w, "%s,%s,%s\n", res.ID, res.DepartureCity, res.ArrivalCity)
		if p.Verbose && res.Direct != nil {
			j := res.Direct
			fmt.Fprintf(w, "%s,SCHEDULE,%s,%s,%s,%s,%s,%s,%s,%s\n",
				res.ID, scheduleDirect, res.DepartureCity, res.ArrivalCity,
				j.DepartureTime, j.ArrivalTime, j.TripID,
				j.FromStopName, j.ToStopName)
		}
	case schedule.StateOneTransfer:
		j := res.Transfer
		fmt.Fprintf(w, "%s,%s,%s,%s\n", res.ID, res.DepartureCity, j.TransferStopName, res.ArrivalCity)
		if p.Verbose {
			fmt.Fprintf(w, "%s,SCHEDULE,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
				res.ID, scheduleOneTransfer, res.DepartureCity, res.ArrivalCity,
				j.Dep1Time, j.Arr1Time, j.Trip1ID,
				j.Dep2Time, j.Arr2Time, j.Trip2ID,
				j.FromStopName, j.TransferStopName, j.ToStopName)
		}
	case schedule.StateInvalidPath:
		fmt.Fprintf(w, "%s,%s\n", res.ID, schedule.StateInvalidPath)
	default:
		fmt.Fprintf(w, "%s,%s,%s,%s\n", res.ID, schedule.StateNoScheduleFound, res.DepartureCity, res.ArrivalCity)
	}
}
