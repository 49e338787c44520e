// Package query implements the four Query Drivers: thin adapters that seed
// the Round Engine, run it, and hand the resulting labels to the Journey
// Reconstructor. It also implements the batch worker-pool layer over
// independent OD triples.
package query

import (
	"github.com/dhanusml/transit-routing/internal/journey"
	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

// EarliestArrival is the point-to-point driver: earliest_arrival(source,
// dest, D_TIME, ...) -> single Pareto set and its journeys.
func EarliestArrival(ix *timetable.Index, source, destination timetable.StopID, departure timetable.Timestamp, cfg raptor.Config) (*journey.Result, error) {
	labels, err := raptor.Solve(ix, source, destination, departure, cfg)
	if err != nil {
		return nil, err
	}
	return journey.Reconstruct(ix, destination, labels, &departure)
}
