package timetable

import (
	"fmt"

	"github.com/pkg/errors"
)

// stopRoutePos is the precomputed (route, stop) -> position key. Computing
// this once at Build time keeps stop_index_on_route an O(1) lookup instead of
// a live list-index scan per round.
type stopRoutePos struct {
	route RouteID
	stop  StopID
}

// Index is the Timetable Index: an immutable, preprocessed view over stops,
// routes, trips and footpaths. Every lookup below is O(1) after Build.
// Internally, stop and route ids (which may be sparse) are remapped to
// dense array indices; the public API always speaks in StopID/RouteID.
type Index struct {
	stopDenseIdx map[StopID]int
	stopByDense  []StopID

	routeDenseIdx map[RouteID]int
	routes        []RouteDef // dense by insertion order

	routesByStop     [][]RouteID         // [denseStopIdx]
	stopPosOnRoute   map[stopRoutePos]int
	footpathsByStop  [][]Footpath        // [denseStopIdx]
}

// Build validates and assembles an Index from loader-supplied definitions.
// It is the only place ScheduleInconsistency / DuplicateStopOnRoute can be
// raised; once Build returns successfully the Index never changes again.
func Build(stops []StopID, routes []RouteDef, footpaths map[StopID][]Footpath) (*Index, error) {
	ix := &Index{
		stopDenseIdx:  make(map[StopID]int, len(stops)),
		routeDenseIdx: make(map[RouteID]int, len(routes)),
		stopPosOnRoute: make(map[stopRoutePos]int),
	}

	for _, s := range stops {
		if _, ok := ix.stopDenseIdx[s]; ok {
			continue
		}
		ix.stopDenseIdx[s] = len(ix.stopByDense)
		ix.stopByDense = append(ix.stopByDense, s)
	}
	ensureStop := func(s StopID) int {
		if idx, ok := ix.stopDenseIdx[s]; ok {
			return idx
		}
		idx := len(ix.stopByDense)
		ix.stopDenseIdx[s] = idx
		ix.stopByDense = append(ix.stopByDense, s)
		return idx
	}

	ix.routesByStop = make([][]RouteID, 0)
	ix.footpathsByStop = make([][]Footpath, 0)
	growTo := func(n int) {
		for len(ix.routesByStop) < n {
			ix.routesByStop = append(ix.routesByStop, nil)
		}
		for len(ix.footpathsByStop) < n {
			ix.footpathsByStop = append(ix.footpathsByStop, nil)
		}
	}

	for _, r := range routes {
		if err := validateFIFO(r); err != nil {
			return nil, errors.Wrapf(err, "route %d", r.ID)
		}

		seen := make(map[StopID]bool, len(r.Stops))
		for pos, s := range r.Stops {
			if seen[s] {
				return nil, errors.Wrapf(ErrDuplicateStopOnRoute, "route %d stop %d", r.ID, s)
			}
			seen[s] = true

			denseIdx := ensureStop(s)
			growTo(denseIdx + 1)
			ix.routesByStop[denseIdx] = append(ix.routesByStop[denseIdx], r.ID)
			ix.stopPosOnRoute[stopRoutePos{route: r.ID, stop: s}] = pos
		}

		ix.routeDenseIdx[r.ID] = len(ix.routes)
		ix.routes = append(ix.routes, r)
	}

	for from, edges := range footpaths {
		denseIdx := ensureStop(from)
		growTo(denseIdx + 1)
		ix.footpathsByStop[denseIdx] = append(ix.footpathsByStop[denseIdx], edges...)
	}

	return ix, nil
}

// validateFIFO enforces the FIFO precondition every Round Engine scan relies
// on: if trip u precedes trip v in the stored order, u never overtakes v at
// any stop.
func validateFIFO(r RouteDef) error {
	n := len(r.Stops)
	for _, t := range r.Trips {
		if len(t.StopTimes) != n {
			return fmt.Errorf("%w: trip %d has %d stop times, route has %d stops", ErrScheduleInconsistency, t.Index, len(t.StopTimes), n)
		}
		for i := 1; i < n; i++ {
			if t.StopTimes[i].Arrival < t.StopTimes[i-1].Departure {
				return fmt.Errorf("%w: trip %d arrival decreases at stop index %d", ErrScheduleInconsistency, t.Index, i)
			}
		}
	}
	for i := 1; i < len(r.Trips); i++ {
		u, v := r.Trips[i-1], r.Trips[i]
		for pos := 0; pos < n; pos++ {
			if u.StopTimes[pos].Arrival > v.StopTimes[pos].Arrival || u.StopTimes[pos].Departure > v.StopTimes[pos].Departure {
				return fmt.Errorf("%w: trip %d overtakes trip %d at stop index %d", ErrScheduleInconsistency, u.Index, v.Index, pos)
			}
		}
	}
	return nil
}

// HasStop reports whether s is present in the Index.
func (ix *Index) HasStop(s StopID) bool {
	_, ok := ix.stopDenseIdx[s]
	return ok
}

// NumStops returns the number of distinct stops known to the Index; Round
// Engine callers size their dense label arrays from this.
func (ix *Index) NumStops() int { return len(ix.stopByDense) }

// StopDenseIndex returns the dense array slot for s; callers use this to
// index their own per-query label arrays. ok is false if s is unknown.
func (ix *Index) StopDenseIndex(s StopID) (int, bool) {
	idx, ok := ix.stopDenseIdx[s]
	return idx, ok
}

// RoutesByStop returns the routes serving s. An unknown stop yields an
// empty slice, per the MissingKey-as-empty contract.
func (ix *Index) RoutesByStop(s StopID) []RouteID {
	idx, ok := ix.stopDenseIdx[s]
	if !ok {
		return nil
	}
	return ix.routesByStop[idx]
}

// StopsOfRoute returns r's ordered stop sequence, or nil if r is unknown.
func (ix *Index) StopsOfRoute(r RouteID) []StopID {
	idx, ok := ix.routeDenseIdx[r]
	if !ok {
		return nil
	}
	return ix.routes[idx].Stops
}

// TripsOfRoute returns r's FIFO-ordered trips, or nil if r is unknown.
func (ix *Index) TripsOfRoute(r RouteID) []Trip {
	idx, ok := ix.routeDenseIdx[r]
	if !ok {
		return nil
	}
	return ix.routes[idx].Trips
}

// StopIndexOnRoute returns the precomputed position of s along r.
func (ix *Index) StopIndexOnRoute(r RouteID, s StopID) (int, bool) {
	pos, ok := ix.stopPosOnRoute[stopRoutePos{route: r, stop: s}]
	return pos, ok
}

// StopAt returns the StopID at a dense index, the inverse of
// StopDenseIndex.
func (ix *Index) StopAt(denseIdx int) StopID { return ix.stopByDense[denseIdx] }

// FootpathsFrom returns the outgoing footpaths of s. An unknown stop or a
// stop with no footpaths both yield an empty slice.
func (ix *Index) FootpathsFrom(s StopID) []Footpath {
	idx, ok := ix.stopDenseIdx[s]
	if !ok {
		return nil
	}
	return ix.footpathsByStop[idx]
}
