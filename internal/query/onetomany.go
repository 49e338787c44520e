package query

import (
	"github.com/dhanusml/transit-routing/internal/journey"
	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

// OneToManyRange implements the one-to-many range variant: a single round
// loop per seed departure, pruned against the running maximum τ* over every
// destination, with post-processing reconstructing a separate result per
// destination from that same shared label state.
func OneToManyRange(ix *timetable.Index, source timetable.StopID, destinations []timetable.StopID, groups DepartureGroups, optimized Optimized, cfg raptor.Config) (map[timetable.StopID]*RangeOutput, error) {
	if !ix.HasStop(source) {
		return nil, timetable.ErrInvalidStop
	}
	destIdxs := make([]int, 0, len(destinations))
	for _, d := range destinations {
		idx, ok := ix.StopDenseIndex(d)
		if !ok {
			return nil, timetable.ErrInvalidStop
		}
		destIdxs = append(destIdxs, idx)
	}

	seeds := buildSeedEvents(ix, source, groups, cfg.WalkingFromSource)

	labels := raptor.NewQueryLabels(ix, cfg.MaxTransfers)
	bound := raptor.ManyDestinationBound(labels, destIdxs)

	outputs := make(map[timetable.StopID]*RangeOutput, len(destinations))
	tripSets := make(map[timetable.StopID]map[timetable.TripID]bool, len(destinations))
	routeSets := make(map[timetable.StopID]map[timetable.RouteID]bool, len(destinations))
	for _, d := range destinations {
		outputs[d] = &RangeOutput{}
		tripSets[d] = make(map[timetable.TripID]bool)
		routeSets[d] = make(map[timetable.RouteID]bool)
	}

	for _, s := range seeds {
		labels.ResetPointers()
		marked := raptor.NewMarkedSet(ix.NumStops())
		raptor.SeedEntry(ix, labels, marked, source, s.entry, s.dep, cfg)
		raptor.RunRounds(ix, labels, marked, cfg, bound)

		for _, d := range destinations {
			dep := s.dep
			res, err := journey.Reconstruct(ix, d, labels, &dep)
			if err != nil {
				return nil, err
			}
			outputs[d].Iterations = append(outputs[d].Iterations, RangeIterationResult{DepartureTime: s.dep, Result: res})
			collectCover(res, tripSets[d], routeSets[d])
		}
	}

	for _, d := range destinations {
		outputs[d].TripCover, outputs[d].RouteCover = finalizeCover(optimized, tripSets[d], routeSets[d])
	}
	return outputs, nil
}
