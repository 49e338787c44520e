// Package journey implements the Journey Reconstructor: it walks the Round
// Engine's backtracking labels (or a TBTR trip chain) to materialise
// concrete journeys and derive their walk/wait/in-vehicle time breakdown.
package journey

import (
	"math"

	"github.com/dhanusml/transit-routing/internal/timetable"
)

// LegMode tags a Leg as a walk or a ride.
type LegMode uint8

const (
	LegWalk LegMode = iota
	LegRide
)

// Leg is one segment of a Journey. Trip is the zero TripID for walk legs.
type Leg struct {
	Mode      LegMode
	FromStop  timetable.StopID
	ToStop    timetable.StopID
	StartTime timetable.Timestamp
	EndTime   timetable.Timestamp
	Duration  timetable.Timestamp
	Trip      timetable.TripID
}

// Journey is a materialised, time-annotated sequence of legs plus its
// derived metrics, all rounded to two decimal places.
type Journey struct {
	Transfers int
	StartTime timetable.Timestamp
	Legs      []Leg
	WalkTime  float64
	WaitTime  float64
	OVTT      float64
	IVTT      float64
}

// ParetoEntry pairs a journey with the round count it was found at.
type ParetoEntry struct {
	Round   int
	Journey Journey
}

// Result is reconstruct's output: (rounds_reached, trip_cover, pareto).
type Result struct {
	RoundsReached []int
	TripCover     []timetable.TripID
	Pareto        []ParetoEntry
}

// BuildJourney derives a Journey from an ordered, non-empty leg list and an
// optional departure time.
func BuildJourney(legs []Leg, departure *timetable.Timestamp) Journey {
	j := Journey{Legs: legs}
	if len(legs) == 0 {
		return j
	}

	var start timetable.Timestamp
	skipInitialWait := false
	switch {
	case departure != nil:
		start = *departure
	case legs[0].Mode == LegRide:
		start = legs[0].StartTime
	default:
		// No departure time and the journey opens with a walk: the initial
		// wait is considered zero.
		start = legs[0].EndTime - legs[0].Duration
		skipInitialWait = true
	}
	j.StartTime = start

	var walk, wait, ivtt float64
	rideLegs := 0
	prevEnd := start
	for i, leg := range legs {
		if !(i == 0 && skipInitialWait) {
			wait += float64(leg.StartTime - prevEnd)
		}
		if leg.Mode == LegWalk {
			walk += float64(leg.Duration)
		} else {
			ivtt += float64(leg.Duration)
			rideLegs++
		}
		prevEnd = leg.EndTime
	}

	if rideLegs > 0 {
		j.Transfers = rideLegs - 1
	}
	j.WalkTime = round2(walk)
	j.WaitTime = round2(wait)
	j.OVTT = round2(walk + wait)
	j.IVTT = round2(ivtt)
	return j
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
