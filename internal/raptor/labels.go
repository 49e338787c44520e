// Package raptor implements the Round Engine: the RAPTOR relaxation and its
// range, one-to-many and trip-based variants, operating over an immutable
// timetable.Index and a set of per-query label arrays that are never shared
// across queries.
package raptor

import "github.com/dhanusml/transit-routing/internal/timetable"

// PointerKind tags which shape a Pointer carries: a walk leg or a ride leg.
type PointerKind uint8

const (
	PointerNone PointerKind = iota
	PointerWalk
	PointerRide
)

// Pointer is the provenance record π_k[s]: either a Walk or a Ride shape,
// selected by Kind. The arrival time itself lives in the parallel Tau array,
// not here, since it is shared machinery for both shapes.
type Pointer struct {
	Kind PointerKind

	// Walk fields.
	WalkFrom     timetable.StopID
	WalkDuration timetable.Timestamp

	// Ride fields.
	BoardStop timetable.StopID
	BoardTime timetable.Timestamp
	Trip      timetable.TripID
}

// Labels is the dense, round-indexed label state τ_k[s], τ*[s] and π_k[s]
// for one query. Stops are addressed by their dense index (see
// timetable.Index.StopDenseIndex), not by StopID, to keep the inner loop
// array-indexed rather than map-indexed.
type Labels struct {
	NumRounds int
	Tau       [][]timetable.Timestamp // Tau[k][denseStopIdx]
	TauStar   []timetable.Timestamp   // TauStar[denseStopIdx]
	Pi        [][]Pointer             // Pi[k][denseStopIdx]
}

// NewLabels allocates label arrays for numStops stops and maxTransfers+2
// rounds, all initialised to +infinity / absent. Round 0 is the seed round
// (0 trips); round k for k>=1 represents at most k trips, i.e. at most k-1
// transfers, so reaching maxTransfers transfers requires round index
// maxTransfers+1.
func NewLabels(numStops, maxTransfers int) *Labels {
	rounds := maxTransfers + 2
	l := &Labels{
		NumRounds: rounds,
		Tau:       make([][]timetable.Timestamp, rounds),
		Pi:        make([][]Pointer, rounds),
		TauStar:   make([]timetable.Timestamp, numStops),
	}
	for k := 0; k < rounds; k++ {
		l.Tau[k] = make([]timetable.Timestamp, numStops)
		l.Pi[k] = make([]Pointer, numStops)
		for s := 0; s < numStops; s++ {
			l.Tau[k][s] = timetable.Infinity
		}
	}
	for s := 0; s < numStops; s++ {
		l.TauStar[s] = timetable.Infinity
	}
	return l
}

// ResetForIteration restores Tau/TauStar to +infinity and clears all
// pointers. Used between independent queries; the range driver instead uses
// ResetPointers to share Tau/TauStar across its seed iterations while still
// starting each iteration's provenance from scratch.
func (l *Labels) ResetForIteration() {
	for k := range l.Tau {
		for s := range l.Tau[k] {
			l.Tau[k][s] = timetable.Infinity
		}
	}
	for s := range l.TauStar {
		l.TauStar[s] = timetable.Infinity
	}
	l.ResetPointers()
}

// ResetPointers clears π without touching τ/τ*. The range variant shares τ,
// τ* monotonically across seed departures but starts each
// departure's provenance fresh, since a later (earlier-in-time) iteration's
// journeys are reconstructed independently.
func (l *Labels) ResetPointers() {
	for k := range l.Pi {
		for s := range l.Pi[k] {
			l.Pi[k][s] = Pointer{}
		}
	}
}

func minTimestamp(a, b timetable.Timestamp) timetable.Timestamp {
	if a < b {
		return a
	}
	return b
}
