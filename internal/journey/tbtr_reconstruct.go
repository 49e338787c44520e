package journey

import (
	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

// ReconstructTripBased is the TBTR counterpart of Reconstruct: it chases
// each round's best J[n] entry's Parent chain backwards, trip by trip, to
// produce the same Result shape the route-based variants produce.
func ReconstructTripBased(ix *timetable.Index, destination timetable.StopID, result *raptor.TBTRResult, departure *timetable.Timestamp) (*Result, error) {
	if !ix.HasStop(destination) {
		return nil, timetable.ErrInvalidStop
	}

	res := &Result{}
	tripSet := make(map[timetable.TripID]bool)

	for n := len(result.J) - 1; n >= 0; n-- {
		best := result.J[n]
		if best == nil {
			continue
		}
		legs := tbtrLegs(ix, destination, best)
		if len(legs) == 0 {
			continue
		}
		j := BuildJourney(legs, departure)
		res.RoundsReached = append(res.RoundsReached, n)
		res.Pareto = append(res.Pareto, ParetoEntry{Round: n, Journey: j})
		for _, leg := range legs {
			if leg.Mode == LegRide {
				tripSet[leg.Trip] = true
			}
		}
	}

	res.TripCover = sortedTripCover(tripSet)
	return res, nil
}

// tbtrLegs walks a TBTRBest's Entry chain from the trip that reaches the
// destination back to the round-0 boarding, producing ride legs in order
// plus a trailing walk leg when the last trip's alighting point is not the
// destination itself.
func tbtrLegs(ix *timetable.Index, destination timetable.StopID, best *raptor.TBTRBest) []Leg {
	type segment struct {
		entry     *raptor.TBTREntry
		alightIdx int
	}
	var chain []segment
	alightIdx := best.AlightIdx
	for e := best.Entry; e != nil; {
		chain = append(chain, segment{entry: e, alightIdx: alightIdx})
		if e.Parent == nil {
			break
		}
		alightIdx = e.ParentAlightIdx
		e = e.Parent
	}

	legs := make([]Leg, 0, len(chain)+1)
	for i := len(chain) - 1; i >= 0; i-- {
		seg := chain[i]
		trip, found := tripByIndex(ix, seg.entry.Route, seg.entry.Trip.Index)
		if !found {
			continue
		}
		stops := ix.StopsOfRoute(seg.entry.Route)
		legs = append(legs, Leg{
			Mode:      LegRide,
			FromStop:  stops[seg.entry.FromStopIdx],
			ToStop:    stops[seg.alightIdx],
			StartTime: trip.StopTimes[seg.entry.FromStopIdx].Departure,
			EndTime:   trip.StopTimes[seg.alightIdx].Arrival,
			Duration:  trip.StopTimes[seg.alightIdx].Arrival - trip.StopTimes[seg.entry.FromStopIdx].Departure,
			Trip:      seg.entry.Trip,
		})
	}

	if best.Walking {
		last := legs[len(legs)-1]
		legs = append(legs, Leg{
			Mode:      LegWalk,
			FromStop:  best.WalkFrom,
			ToStop:    destination,
			StartTime: last.EndTime,
			EndTime:   last.EndTime + best.WalkDuration,
			Duration:  best.WalkDuration,
		})
	}
	return legs
}

func tripByIndex(ix *timetable.Index, route timetable.RouteID, index int) (timetable.Trip, bool) {
	for _, t := range ix.TripsOfRoute(route) {
		if t.Index == index {
			return t, true
		}
	}
	return timetable.Trip{}, false
}
