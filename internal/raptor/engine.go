package raptor

import "github.com/dhanusml/transit-routing/internal/timetable"

// Config carries the per-query parameters common to every Round Engine
// variant.
type Config struct {
	MaxTransfers      int
	WalkingFromSource bool
	ChangeTime        timetable.Timestamp
}

// Solve runs the standard RAPTOR relaxation from source for up to
// cfg.MaxTransfers transfers, pruning against a single destination, and
// returns the full label arrays. The Round Engine never fails on valid stop
// ids: an unreachable destination simply leaves τ*[destination] at
// +infinity.
func Solve(ix *timetable.Index, source, destination timetable.StopID, departure timetable.Timestamp, cfg Config) (*Labels, error) {
	if !ix.HasStop(source) || !ix.HasStop(destination) {
		return nil, timetable.ErrInvalidStop
	}

	labels := NewQueryLabels(ix, cfg.MaxTransfers)
	marked := NewMarkedSet(ix.NumStops())

	destIdx, _ := ix.StopDenseIndex(destination)
	bound := DestinationBound(labels, destIdx)

	SeedSource(ix, labels, marked, source, departure, cfg.WalkingFromSource)
	RunRounds(ix, labels, marked, cfg, bound)
	return labels, nil
}

// NewQueryLabels allocates the label state for one query over ix.
func NewQueryLabels(ix *timetable.Index, maxTransfers int) *Labels {
	return NewLabels(ix.NumStops(), maxTransfers)
}

// DestinationBound returns the target-pruning bound for a single
// destination: simply its current τ*.
func DestinationBound(labels *Labels, destIdx int) func() timetable.Timestamp {
	return func() timetable.Timestamp { return labels.TauStar[destIdx] }
}

// ManyDestinationBound returns the target-pruning bound for the
// one-to-many variant: the maximum current τ* over all destinations, or
// +infinity if the list is empty (no bound known yet).
func ManyDestinationBound(labels *Labels, destIdxs []int) func() timetable.Timestamp {
	return func() timetable.Timestamp {
		bound := timetable.Infinity
		for i, idx := range destIdxs {
			if i == 0 || labels.TauStar[idx] > bound {
				bound = labels.TauStar[idx]
			}
		}
		return bound
	}
}

// SeedSource performs round-0 initialisation for a literal point query: the
// source is seeded at the departure time, and if walking_from_source is
// set, every footpath out of the source seeds its target too.
func SeedSource(ix *timetable.Index, labels *Labels, marked *MarkedSet, source timetable.StopID, departure timetable.Timestamp, walkingFromSource bool) {
	srcIdx, _ := ix.StopDenseIndex(source)
	labels.Tau[0][srcIdx] = departure
	labels.TauStar[srcIdx] = departure
	marked.Mark(srcIdx)

	if !walkingFromSource {
		return
	}
	for _, fp := range ix.FootpathsFrom(source) {
		toIdx, ok := ix.StopDenseIndex(fp.To)
		if !ok {
			continue
		}
		arrival := departure + fp.Duration
		if arrival < labels.Tau[0][toIdx] {
			labels.Tau[0][toIdx] = arrival
			labels.TauStar[toIdx] = arrival
			labels.Pi[0][toIdx] = Pointer{Kind: PointerWalk, WalkFrom: source, WalkDuration: fp.Duration}
			marked.Mark(toIdx)
		}
	}
}

// SeedEntry performs the range variant's round-0 seeding for one candidate
// departure event entering the network at entry at departureTime. When
// entry is the source itself this degenerates to the same seeding
// SeedSource performs for round 0 (without its own footpath fan-out, which
// the range driver already expanded into separate seed events).
//
// When entry is not the source, the walk arrival is recorded as
// departureTime-cfg.ChangeTime regardless of the footpath's actual
// duration: the arrival a non-source entry gets credited with tracks the
// change-time budget rather than the footpath's real walking time. Left
// as-is rather than corrected, since fixing it would change which journeys
// are reachable.
func SeedEntry(ix *timetable.Index, labels *Labels, marked *MarkedSet, source, entry timetable.StopID, departureTime timetable.Timestamp, cfg Config) {
	entryIdx, ok := ix.StopDenseIndex(entry)
	if !ok {
		return
	}

	if entry == source {
		labels.Tau[0][entryIdx] = departureTime
		labels.TauStar[entryIdx] = departureTime
		marked.Mark(entryIdx)
		return
	}

	arrival := departureTime - cfg.ChangeTime
	var duration timetable.Timestamp
	for _, fp := range ix.FootpathsFrom(source) {
		if fp.To == entry {
			duration = fp.Duration
			break
		}
	}
	labels.Tau[0][entryIdx] = arrival
	labels.TauStar[entryIdx] = arrival
	labels.Pi[0][entryIdx] = Pointer{Kind: PointerWalk, WalkFrom: source, WalkDuration: duration}
	marked.Mark(entryIdx)
}

// RunRounds executes rounds 1..cfg.MaxTransfers+1 over already-seeded
// round-0 labels (round k rides up to k trips, i.e. up to k-1 transfers, so
// cfg.MaxTransfers transfers needs round index cfg.MaxTransfers+1),
// stopping early once a round ends with nothing marked. destBound is
// re-evaluated on every comparison so that it
// always reflects the live τ* array (needed for the one-to-many variant,
// whose bound is a running max over several destinations).
func RunRounds(ix *timetable.Index, labels *Labels, marked *MarkedSet, cfg Config, destBound func() timetable.Timestamp) {
	for k := 1; k <= cfg.MaxTransfers+1; k++ {
		// Carry τ forward: τ_k starts equal to τ_{k-1} so that stops
		// untouched this round keep their best-known arrival (monotone
		// invariant 2). π is never carried forward: π_k[s] is set only
		// when round k itself records new provenance (see journey.go's
		// use of rounds_reached).
		copy(labels.Tau[k], labels.Tau[k-1])

		if marked.Len() == 0 {
			return
		}
		runRound(ix, labels, marked, k, cfg, destBound)
		if marked.Len() == 0 {
			return
		}
	}
}

// runRound executes the three phases of one round: collect routes touched by
// stops marked last round, scan them to improve labels, then relax
// footpaths from every stop marked during the scan.
func runRound(ix *timetable.Index, labels *Labels, marked *MarkedSet, round int, cfg Config, destBound func() timetable.Timestamp) {
	queue := collectRoutes(ix, marked)
	scanRoutes(ix, labels, marked, round, cfg, queue, destBound)
	relaxFootpaths(ix, labels, marked, round, destBound)
}

// collectRoutes is Phase 1: drain the marked set and, for every route
// serving a drained stop, record the earliest boardable index on it.
func collectRoutes(ix *timetable.Index, marked *MarkedSet) map[timetable.RouteID]int {
	drained := marked.Drain()
	queue := make(map[timetable.RouteID]int)
	for _, idx := range drained {
		stop := ix.StopAt(idx)
		for _, r := range ix.RoutesByStop(stop) {
			pos, ok := ix.StopIndexOnRoute(r, stop)
			if !ok {
				continue
			}
			if cur, seen := queue[r]; !seen || pos < cur {
				queue[r] = pos
			}
		}
	}
	return queue
}

// scanRoutes is Phase 2: for every queued route, ride its FIFO trip order
// from the earliest boardable index, attempting an improvement at each stop
// before considering whether to board an earlier trip there.
func scanRoutes(ix *timetable.Index, labels *Labels, marked *MarkedSet, round int, cfg Config, queue map[timetable.RouteID]int, destBound func() timetable.Timestamp) {
	for route, startPos := range queue {
		stops := ix.StopsOfRoute(route)
		trips := ix.TripsOfRoute(route)

		var boarded bool
		var current timetable.Trip
		var boardStop timetable.StopID
		var boardTime timetable.Timestamp

		for i := startPos; i < len(stops); i++ {
			stop := stops[i]
			stopIdx, _ := ix.StopDenseIndex(stop)

			if boarded {
				arrival := current.StopTimes[i].Arrival
				bound := minTimestamp(labels.TauStar[stopIdx], destBound())
				if arrival < bound {
					labels.Tau[round][stopIdx] = arrival
					labels.TauStar[stopIdx] = arrival
					labels.Pi[round][stopIdx] = Pointer{
						Kind:      PointerRide,
						BoardStop: boardStop,
						BoardTime: boardTime,
						Trip:      timetable.TripID{Route: route, Index: current.Index},
					}
					marked.Mark(stopIdx)
				}
			}

			// Boarding always keys off τ_{k-1}, never this round's
			// in-progress improvement at the same stop. A stop the current
			// trip merely passes through, without having been reached in the
			// previous round, leaves prevArrival at +infinity; querying for a
			// trip after that finds none and drops the trip we're riding, so
			// the catch-an-earlier-trip re-query only runs once prevArrival
			// is finite.
			prevArrival := labels.Tau[round-1][stopIdx]
			if boarded && prevArrival >= timetable.Infinity {
				continue
			}
			canCatchEarlier := boarded && prevArrival+cfg.ChangeTime <= current.StopTimes[i].Departure
			if !boarded || !canCatchEarlier {
				if t, ok := earliestTripAfter(trips, i, prevArrival+cfg.ChangeTime); ok {
					current = t
					boarded = true
					boardStop = stop
					boardTime = t.StopTimes[i].Departure
				} else {
					boarded = false
				}
			}
		}
	}
}

// relaxFootpaths is Phase 3: snapshot the stops marked so far this round and
// relax one footpath hop out of each; targets newly marked here are left
// for the next round's Phase 1, not rescanned within this pass.
func relaxFootpaths(ix *timetable.Index, labels *Labels, marked *MarkedSet, round int, destBound func() timetable.Timestamp) {
	snapshot := marked.Snapshot()
	for _, idx := range snapshot {
		stop := ix.StopAt(idx)
		for _, fp := range ix.FootpathsFrom(stop) {
			toIdx, ok := ix.StopDenseIndex(fp.To)
			if !ok {
				continue
			}
			arrival := labels.Tau[round][idx] + fp.Duration
			bound := minTimestamp(labels.TauStar[toIdx], destBound())
			if arrival < labels.Tau[round][toIdx] && arrival < bound {
				labels.Tau[round][toIdx] = arrival
				labels.TauStar[toIdx] = arrival
				labels.Pi[round][toIdx] = Pointer{Kind: PointerWalk, WalkFrom: stop, WalkDuration: fp.Duration}
				marked.Mark(toIdx)
			}
		}
	}
}

// earliestTripAfter linear-probes trips in FIFO order for the first whose
// departure at pos is not before deadline. Correct only under the FIFO
// precondition timetable.Build enforces.
func earliestTripAfter(trips []timetable.Trip, pos int, deadline timetable.Timestamp) (timetable.Trip, bool) {
	for _, t := range trips {
		if t.StopTimes[pos].Departure >= deadline {
			return t, true
		}
	}
	return timetable.Trip{}, false
}
