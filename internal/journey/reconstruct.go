package journey

import (
	"sort"

	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

// Reconstruct walks every round k for which π_k[destination] is set,
// backtracks that round's journey, and returns the Pareto set ordered by
// descending round alongside the union trip cover. The optional departure
// time seeds the first leg's start time in the Journey derivation.
func Reconstruct(ix *timetable.Index, destination timetable.StopID, labels *raptor.Labels, departure *timetable.Timestamp) (*Result, error) {
	destIdx, ok := ix.StopDenseIndex(destination)
	if !ok {
		return nil, timetable.ErrInvalidStop
	}

	res := &Result{}
	tripSet := make(map[timetable.TripID]bool)

	for k := len(labels.Pi) - 1; k >= 0; k-- {
		if labels.Pi[k][destIdx].Kind == raptor.PointerNone {
			continue
		}
		legs := backtrack(ix, labels, destination, k)
		if len(legs) == 0 {
			continue
		}
		j := BuildJourney(legs, departure)
		res.RoundsReached = append(res.RoundsReached, k)
		res.Pareto = append(res.Pareto, ParetoEntry{Round: k, Journey: j})
		for _, leg := range legs {
			if leg.Mode == LegRide {
				tripSet[leg.Trip] = true
			}
		}
	}

	res.TripCover = sortedTripCover(tripSet)
	return res, nil
}

// backtrack starts at (round, destination); while π_round[stop] is set, it
// prepends the leg it describes. A walk leg keeps the round and moves to
// its origin; a ride leg decrements the round (each ride consumes one
// round) and moves to its board stop.
func backtrack(ix *timetable.Index, labels *raptor.Labels, destination timetable.StopID, round int) []Leg {
	var legs []Leg
	stop := destination
	k := round

	for k >= 0 {
		stopIdx, ok := ix.StopDenseIndex(stop)
		if !ok {
			break
		}
		p := labels.Pi[k][stopIdx]
		if p.Kind == raptor.PointerNone {
			break
		}
		switch p.Kind {
		case raptor.PointerWalk:
			arrival := labels.Tau[k][stopIdx]
			legs = append(legs, Leg{
				Mode:      LegWalk,
				FromStop:  p.WalkFrom,
				ToStop:    stop,
				StartTime: arrival - p.WalkDuration,
				EndTime:   arrival,
				Duration:  p.WalkDuration,
			})
			stop = p.WalkFrom
		case raptor.PointerRide:
			arrival := labels.Tau[k][stopIdx]
			legs = append(legs, Leg{
				Mode:      LegRide,
				FromStop:  p.BoardStop,
				ToStop:    stop,
				StartTime: p.BoardTime,
				EndTime:   arrival,
				Duration:  arrival - p.BoardTime,
				Trip:      p.Trip,
			})
			stop = p.BoardStop
			k--
		}
	}

	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}
	return legs
}

func sortedTripCover(set map[timetable.TripID]bool) []timetable.TripID {
	out := make([]timetable.TripID, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
