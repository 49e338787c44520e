package query

import (
	"github.com/dhanusml/transit-routing/internal/journey"
	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

// TripBased implements the trip_based driver: it runs SolveTripBased against
// a precomputed TBTRPrecomputed for the destination and hands the resulting
// J array to ReconstructTripBased. pre should be built once per
// (destination, change_time) via raptor.BuildTBTRPrecomputed and reused
// across queries sharing that destination.
func TripBased(ix *timetable.Index, source, destination timetable.StopID, departure timetable.Timestamp, cfg raptor.Config, pre *raptor.TBTRPrecomputed) (*journey.Result, error) {
	result, err := raptor.SolveTripBased(ix, source, destination, departure, cfg, pre)
	if err != nil {
		return nil, err
	}
	return journey.ReconstructTripBased(ix, destination, result, &departure)
}
