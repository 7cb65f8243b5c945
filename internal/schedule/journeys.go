package schedule

import "sort"

// Direct is a single-trip journey between two stops.
type Direct struct {
	FromStopID    string `json:"fromStopId"`
	ToStopID      string `json:"toStopId"`
	TripID        string `json:"tripId"`
	RouteID       string `json:"routeId"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	FromStopName  string `json:"fromStopName"`
	ToStopName    string `json:"toStopName"`
}

// OneTransfer is a two-trip journey joined at a shared transfer stop.
type OneTransfer struct {
	Trip1ID          string `json:"trip1Id"`
	Route1ID         string `json:"route1Id"`
	FromStopID       string `json:"fromStopId"`
	TransferStopID   string `json:"transferStopId"`
	Dep1Time         string `json:"dep1Time"`
	Arr1Time         string `json:"arr1Time"`
	Trip2ID          string `json:"trip2Id"`
	Route2ID         string `json:"route2Id"`
	ToStopID         string `json:"toStopId"`
	Dep2Time         string `json:"dep2Time"`
	Arr2Time         string `json:"arr2Time"`
	FromStopName     string `json:"fromStopName"`
	TransferStopName string `json:"transferStopName"`
	ToStopName       string `json:"toStopName"`
}

// FindDirect returns up to limit same-trip journeys from any from-stop to
// any to-stop, ordered by departure time. A pair is kept only when the
// origin's stop_sequence is strictly below the destination's (forward
// travel on the trip; loops and backtracking are not modeled).
func (idx *Index) FindDirect(fromIDs, toIDs []string, limit int) []Direct {
	if len(fromIDs) == 0 || len(toIDs) == 0 {
		return nil
	}

	toByTrip := make(map[string][]StopTime)
	for _, toID := range toIDs {
		for _, st := range idx.stopTimesByStop[toID] {
			toByTrip[st.TripID] = append(toByTrip[st.TripID], st)
		}
	}

	var pool []Direct
	for _, fromID := range fromIDs {
		for _, from := range idx.stopTimesByStop[fromID] {
			for _, to := range toByTrip[from.TripID] {
				if from.StopSequence >= to.StopSequence {
					continue
				}
				pool = append(pool, Direct{
					FromStopID:    from.StopID,
					ToStopID:      to.StopID,
					TripID:        from.TripID,
					RouteID:       idx.routeByTrip[from.TripID],
					DepartureTime: from.DepartureTime,
					ArrivalTime:   to.ArrivalTime,
					FromStopName:  idx.StopName(from.StopID),
					ToStopName:    idx.StopName(to.StopID),
				})
			}
		}
	}

	sort.SliceStable(pool, func(a, b int) bool {
		return pool[a].DepartureTime < pool[b].DepartureTime
	})
	if len(pool) > idx.caps.DirectPoolCap {
		pool = pool[:idx.caps.DirectPoolCap]
	}
	if limit > 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}

// leg1Candidate is a ride from a from-stop to a later stop on the same trip.
type leg1Candidate struct {
	tripID       string
	fromStopID   string
	transferStop string
	dep1         string
	arr1         string
}

// leg2Candidate is a ride from an earlier stop to a to-stop on the same trip.
type leg2Candidate struct {
	tripID       string
	transferStop string
	toStopID     string
	dep2         string
	arr2         string
}

// FindOneTransfer returns up to limit two-leg journeys joined on a shared
// transfer stop where leg 2 departs no earlier than leg 1 arrives (lexical
// time comparison, valid for same-day zero-padded times). Each leg's
// candidate list is capped at maxPerLeg after sorting by its own departure
// time; this bound is what keeps the join from going quadratic on a full
// feed.
func (idx *Index) FindOneTransfer(fromIDs, toIDs []string, limit, maxPerLeg int) []OneTransfer {
	if len(fromIDs) == 0 || len(toIDs) == 0 {
		return nil
	}

	var leg1 []leg1Candidate
	for _, fromID := range fromIDs {
		for _, from := range idx.stopTimesByStop[fromID] {
			for _, later := range idx.stopTimesByTrip[from.TripID] {
				if later.StopSequence <= from.StopSequence || later.StopID == from.StopID {
					continue
				}
				leg1 = append(leg1, leg1Candidate{
					tripID:       from.TripID,
					fromStopID:   from.StopID,
					transferStop: later.StopID,
					dep1:         from.DepartureTime,
					arr1:         later.ArrivalTime,
				})
			}
		}
	}
	if len(leg1) == 0 {
		return nil
	}
	sort.SliceStable(leg1, func(a, b int) bool { return leg1[a].dep1 < leg1[b].dep1 })
	if maxPerLeg > 0 && len(leg1) > maxPerLeg {
		leg1 = leg1[:maxPerLeg]
	}

	var leg2 []leg2Candidate
	for _, toID := range toIDs {
		for _, to := range idx.stopTimesByStop[toID] {
			for _, earlier := range idx.stopTimesByTrip[to.TripID] {
				if earlier.StopSequence >= to.StopSequence || earlier.StopID == to.StopID {
					continue
				}
				leg2 = append(leg2, leg2Candidate{
					tripID:       to.TripID,
					transferStop: earlier.StopID,
					toStopID:     to.StopID,
					dep2:         earlier.DepartureTime,
					arr2:         to.ArrivalTime,
				})
			}
		}
	}
	if len(leg2) == 0 {
		return nil
	}
	sort.SliceStable(leg2, func(a, b int) bool { return leg2[a].dep2 < leg2[b].dep2 })
	if maxPerLeg > 0 && len(leg2) > maxPerLeg {
		leg2 = leg2[:maxPerLeg]
	}

	leg2ByStop := make(map[string][]leg2Candidate)
	for _, l2 := range leg2 {
		leg2ByStop[l2.transferStop] = append(leg2ByStop[l2.transferStop], l2)
	}

	var pool []OneTransfer
	for _, l1 := range leg1 {
		for _, l2 := range leg2ByStop[l1.transferStop] {
			if l2.dep2 < l1.arr1 {
				continue
			}
			pool = append(pool, OneTransfer{
				Trip1ID:          l1.tripID,
				Route1ID:         idx.routeByTrip[l1.tripID],
				FromStopID:       l1.fromStopID,
				TransferStopID:   l1.transferStop,
				Dep1Time:         l1.dep1,
				Arr1Time:         l1.arr1,
				Trip2ID:          l2.tripID,
				Route2ID:         idx.routeByTrip[l2.tripID],
				ToStopID:         l2.toStopID,
				Dep2Time:         l2.dep2,
				Arr2Time:         l2.arr2,
				FromStopName:     idx.StopName(l1.fromStopID),
				TransferStopName: idx.StopName(l1.transferStop),
				ToStopName:       idx.StopName(l2.toStopID),
			})
		}
	}

	sort.SliceStable(pool, func(a, b int) bool {
		if pool[a].Dep1Time != pool[b].Dep1Time {
			return pool[a].Dep1Time < pool[b].Dep1Time
		}
		return pool[a].Arr2Time < pool[b].Arr2Time
	})
	if len(pool) > idx.caps.TransferPoolCap {
		pool = pool[:idx.caps.TransferPoolCap]
	}
	if limit > 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}
