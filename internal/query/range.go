package query

import (
	"sort"

	"github.com/dhanusml/transit-routing/internal/journey"
	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

// DepartureGroups maps each stop to its chronologically available
// departures into the network (the stop's own scheduled departures; a
// caller seeding from headways or a timetable scan builds this ahead of
// time).
type DepartureGroups map[timetable.StopID][]timetable.Timestamp

// Optimized selects what the range driver's cover set tracks: OptimizedRoutes
// unions route ids touched by any Pareto-optimal journey across all seed
// departures, OptimizedTrips unions the actual trip ids instead.
type Optimized int

const (
	OptimizedRoutes Optimized = iota
	OptimizedTrips
)

// RangeIterationResult is one seed departure's reconstructed result.
type RangeIterationResult struct {
	DepartureTime timetable.Timestamp
	Result        *journey.Result
}

// RangeOutput is the range driver's return value: every iteration's result
// plus the union cover set selected by Optimized.
type RangeOutput struct {
	Iterations []RangeIterationResult
	TripCover  []timetable.TripID
	RouteCover []timetable.RouteID
}

type seedEvent struct {
	entry timetable.StopID
	dep   timetable.Timestamp
}

func buildSeedEvents(ix *timetable.Index, source timetable.StopID, groups DepartureGroups, walkingFromSource bool) []seedEvent {
	var seeds []seedEvent
	for _, d := range groups[source] {
		seeds = append(seeds, seedEvent{entry: source, dep: d})
	}
	if walkingFromSource {
		for _, fp := range ix.FootpathsFrom(source) {
			for _, d := range groups[fp.To] {
				seeds = append(seeds, seedEvent{entry: fp.To, dep: d})
			}
		}
	}
	// rRAPTOR requires seeds in descending departure order so that τ, τ*
	// carried across iterations only ever improve.
	sort.Slice(seeds, func(i, j int) bool { return seeds[i].dep > seeds[j].dep })
	return seeds
}

// Range implements the range variant (rRAPTOR): it iterates seed departures
// in descending order, sharing τ/τ* across iterations while resetting π and
// the marked set per iteration, and reconstructs a journey set for every
// iteration.
func Range(ix *timetable.Index, source, destination timetable.StopID, groups DepartureGroups, optimized Optimized, cfg raptor.Config) (*RangeOutput, error) {
	if !ix.HasStop(source) || !ix.HasStop(destination) {
		return nil, timetable.ErrInvalidStop
	}

	seeds := buildSeedEvents(ix, source, groups, cfg.WalkingFromSource)

	labels := raptor.NewQueryLabels(ix, cfg.MaxTransfers)
	destIdx, _ := ix.StopDenseIndex(destination)
	bound := raptor.DestinationBound(labels, destIdx)

	out := &RangeOutput{}
	tripSet := make(map[timetable.TripID]bool)
	routeSet := make(map[timetable.RouteID]bool)

	for _, s := range seeds {
		labels.ResetPointers()
		marked := raptor.NewMarkedSet(ix.NumStops())
		raptor.SeedEntry(ix, labels, marked, source, s.entry, s.dep, cfg)
		raptor.RunRounds(ix, labels, marked, cfg, bound)

		dep := s.dep
		res, err := journey.Reconstruct(ix, destination, labels, &dep)
		if err != nil {
			return nil, err
		}
		out.Iterations = append(out.Iterations, RangeIterationResult{DepartureTime: s.dep, Result: res})
		collectCover(res, tripSet, routeSet)
	}

	out.TripCover, out.RouteCover = finalizeCover(optimized, tripSet, routeSet)
	return out, nil
}

func collectCover(res *journey.Result, tripSet map[timetable.TripID]bool, routeSet map[timetable.RouteID]bool) {
	for _, entry := range res.Pareto {
		for _, leg := range entry.Journey.Legs {
			if leg.Mode != journey.LegRide {
				continue
			}
			tripSet[leg.Trip] = true
			routeSet[leg.Trip.Route] = true
		}
	}
}

func finalizeCover(optimized Optimized, tripSet map[timetable.TripID]bool, routeSet map[timetable.RouteID]bool) ([]timetable.TripID, []timetable.RouteID) {
	if optimized == OptimizedTrips {
		trips := make([]timetable.TripID, 0, len(tripSet))
		for t := range tripSet {
			trips = append(trips, t)
		}
		sort.Slice(trips, func(i, j int) bool { return trips[i].String() < trips[j].String() })
		return trips, nil
	}
	routes := make([]timetable.RouteID, 0, len(routeSet))
	for r := range routeSet {
		routes = append(routes, r)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i] < routes[j] })
	return nil, routes
}
