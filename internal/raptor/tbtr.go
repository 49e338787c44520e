package raptor

import "github.com/dhanusml/transit-routing/internal/timetable"

// TBTREntry is one entry in a TBTR round's trip-segment queue Q[n]: a trip
// boarded at FromStopIdx, together with the entry (if any) that produced it
// via a transfer in the previous round. Post-processing chases Parent
// backwards to materialise the journey.
type TBTREntry struct {
	FromStopIdx int
	Trip        timetable.TripID
	Route       timetable.RouteID
	Parent      *TBTREntry
	// ParentAlightIdx is the stop index on Parent.Trip at which this entry
	// was boarded by transferring off the parent trip; meaningless when
	// Parent is nil (a round-0 seed entry).
	ParentAlightIdx int
}

// TBTRBest is the best (arrival_time, provenance) found with exactly the
// enclosing round's transfer count. It is not carried forward from rounds
// with fewer transfers, so J[n] may be nil or arrive later than J[n-1].
type TBTRBest struct {
	ArrivalTime  timetable.Timestamp
	Entry        *TBTREntry
	AlightIdx    int
	Walking      bool
	WalkDuration timetable.Timestamp
	WalkFrom     timetable.StopID
}

// TBTRResult is J[0..MAX_TRANSFER]; J[n] is nil if no journey with exactly
// n transfers reaches the destination.
type TBTRResult struct {
	J []*TBTRBest
}

// AlightOption is one entry of L[route_id]: a stop along the route from
// which the destination is reachable, directly or by one walk.
type AlightOption struct {
	AlightIndex  int
	WalkDuration timetable.Timestamp
	WalkFrom     timetable.StopID
}

// TripTransfer is one entry of trip_transfer_dict[tid][from_stop_idx]: a
// trip reachable by transferring off tid at from_stop_idx.
type TripTransfer struct {
	ToTrip      timetable.TripID
	ToStopIndex int
}

// TBTRPrecomputed holds the two auxiliary structures the trip-based variant
// needs: L (alighting options per route) and the trip-to-trip transfer
// dictionary.
// Both depend only on the Timetable Index, the destination and the change
// time, so callers build one per (destination, change_time) pair and reuse
// it across repeated trip_based queries to the same destination.
type TBTRPrecomputed struct {
	L         map[timetable.RouteID][]AlightOption
	Transfers map[timetable.TripID]map[int][]TripTransfer
}

// BuildTBTRPrecomputed derives L and trip_transfer_dict for destination.
func BuildTBTRPrecomputed(ix *timetable.Index, destination timetable.StopID, cfg Config) *TBTRPrecomputed {
	pre := &TBTRPrecomputed{
		L:         make(map[timetable.RouteID][]AlightOption),
		Transfers: make(map[timetable.TripID]map[int][]TripTransfer),
	}

	walkableInto := map[timetable.StopID]timetable.Timestamp{destination: 0}
	for i := 0; i < ix.NumStops(); i++ {
		s := ix.StopAt(i)
		for _, fp := range ix.FootpathsFrom(s) {
			if fp.To != destination {
				continue
			}
			if d, ok := walkableInto[s]; !ok || fp.Duration < d {
				walkableInto[s] = fp.Duration
			}
		}
	}

	seenRoutes := make(map[timetable.RouteID]bool)
	for i := 0; i < ix.NumStops(); i++ {
		for _, r := range ix.RoutesByStop(ix.StopAt(i)) {
			if seenRoutes[r] {
				continue
			}
			seenRoutes[r] = true

			stops := ix.StopsOfRoute(r)
			for pos, st := range stops {
				if dur, ok := walkableInto[st]; ok {
					pre.L[r] = append(pre.L[r], AlightOption{AlightIndex: pos, WalkDuration: dur, WalkFrom: st})
				}
			}
		}
	}

	for r := range seenRoutes {
		stops := ix.StopsOfRoute(r)
		for _, t := range ix.TripsOfRoute(r) {
			tid := timetable.TripID{Route: r, Index: t.Index}
			for pos := 0; pos < len(stops); pos++ {
				arrival := t.StopTimes[pos].Arrival
				stop := stops[pos]

				addTransfersAt := func(at timetable.StopID, deadline timetable.Timestamp) {
					for _, r2 := range ix.RoutesByStop(at) {
						pos2, ok := ix.StopIndexOnRoute(r2, at)
						if !ok {
							continue
						}
						trip2, found := earliestTripAfter(ix.TripsOfRoute(r2), pos2, deadline)
						if !found {
							continue
						}
						tid2 := timetable.TripID{Route: r2, Index: trip2.Index}
						if tid2 == tid {
							continue
						}
						if pre.Transfers[tid] == nil {
							pre.Transfers[tid] = make(map[int][]TripTransfer)
						}
						pre.Transfers[tid][pos] = append(pre.Transfers[tid][pos], TripTransfer{ToTrip: tid2, ToStopIndex: pos2})
					}
				}

				addTransfersAt(stop, arrival+cfg.ChangeTime)
				for _, fp := range ix.FootpathsFrom(stop) {
					addTransfersAt(fp.To, arrival+fp.Duration)
				}
			}
		}
	}

	return pre
}

// SolveTripBased runs the Trip-Based Transit Routing variant: it enumerates
// trips rather than routes, tracking only the best arrival per transfer
// count rather than a per-stop label array.
func SolveTripBased(ix *timetable.Index, source, destination timetable.StopID, departure timetable.Timestamp, cfg Config, pre *TBTRPrecomputed) (*TBTRResult, error) {
	if !ix.HasStop(source) || !ix.HasStop(destination) {
		return nil, timetable.ErrInvalidStop
	}

	rounds := cfg.MaxTransfers + 1
	best := make([]*TBTRBest, rounds)
	queue := make([][]*TBTREntry, rounds+1)
	enteredAt := make(map[timetable.TripID]int)

	for _, r := range ix.RoutesByStop(source) {
		pos, ok := ix.StopIndexOnRoute(r, source)
		if !ok {
			continue
		}
		t, found := earliestTripAfter(ix.TripsOfRoute(r), pos, departure)
		if !found {
			continue
		}
		tid := timetable.TripID{Route: r, Index: t.Index}
		if existing, seen := enteredAt[tid]; seen && existing <= pos {
			continue
		}
		enteredAt[tid] = pos
		queue[0] = append(queue[0], &TBTREntry{FromStopIdx: pos, Trip: tid, Route: r})
	}

	for n := 0; n < rounds; n++ {
		for _, entry := range queue[n] {
			stops := ix.StopsOfRoute(entry.Route)
			trip, found := findTripByIndex(ix, entry.Route, entry.Trip.Index)
			if !found {
				continue
			}

			for _, opt := range pre.L[entry.Route] {
				if opt.AlightIndex <= entry.FromStopIdx {
					continue
				}
				arrival := trip.StopTimes[opt.AlightIndex].Arrival + opt.WalkDuration
				if best[n] == nil || arrival < best[n].ArrivalTime {
					best[n] = &TBTRBest{
						ArrivalTime:  arrival,
						Entry:        entry,
						AlightIdx:    opt.AlightIndex,
						Walking:      opt.WalkDuration > 0,
						WalkDuration: opt.WalkDuration,
						WalkFrom:     opt.WalkFrom,
					}
				}
			}

			if n+1 >= rounds {
				continue
			}
			for pos := entry.FromStopIdx + 1; pos < len(stops); pos++ {
				for _, tr := range pre.Transfers[entry.Trip][pos] {
					if existing, seen := enteredAt[tr.ToTrip]; seen && existing <= tr.ToStopIndex {
						continue
					}
					enteredAt[tr.ToTrip] = tr.ToStopIndex
					queue[n+1] = append(queue[n+1], &TBTREntry{
						FromStopIdx:     tr.ToStopIndex,
						Trip:            tr.ToTrip,
						Route:           tr.ToTrip.Route,
						Parent:          entry,
						ParentAlightIdx: pos,
					})
				}
			}
		}
	}

	return &TBTRResult{J: best}, nil
}

func findTripByIndex(ix *timetable.Index, route timetable.RouteID, index int) (timetable.Trip, bool) {
	for _, t := range ix.TripsOfRoute(route) {
		if t.Index == index {
			return t, true
		}
	}
	return timetable.Trip{}, false
}
