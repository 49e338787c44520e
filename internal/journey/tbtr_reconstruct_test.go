package journey_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhanusml/transit-routing/internal/journey"
	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

func buildTBTRTransferNetwork(t *testing.T) *timetable.Index {
	t.Helper()
	route1 := timetable.RouteDef{
		ID:    1,
		Stops: []timetable.StopID{stopA, stopX},
		Trips: []timetable.Trip{
			{Index: 0, StopTimes: []timetable.StopTime{
				{Arrival: 9 * 3600, Departure: 9 * 3600},
				{Arrival: 9*3600 + 900, Departure: 9*3600 + 900},
			}},
		},
	}
	route2 := timetable.RouteDef{
		ID:    2,
		Stops: []timetable.StopID{stopX, stopB},
		Trips: []timetable.Trip{
			{Index: 0, StopTimes: []timetable.StopTime{
				{Arrival: 9*3600 + 1200, Departure: 9*3600 + 1200},
				{Arrival: 9*3600 + 2400, Departure: 9*3600 + 2400},
			}},
		},
	}
	ix, err := timetable.Build([]timetable.StopID{stopA, stopX, stopB}, []timetable.RouteDef{route1, route2}, nil)
	require.NoError(t, err)
	return ix
}

func TestReconstructTripBasedOneTransfer(t *testing.T) {
	ix := buildTBTRTransferNetwork(t)
	cfg := raptor.Config{MaxTransfers: 1}

	pre := raptor.BuildTBTRPrecomputed(ix, stopB, cfg)
	departure := timetable.Timestamp(8*3600 + 50*60)
	tbtrRes, err := raptor.SolveTripBased(ix, stopA, stopB, departure, cfg, pre)
	require.NoError(t, err)

	res, err := journey.ReconstructTripBased(ix, stopB, tbtrRes, &departure)
	require.NoError(t, err)
	require.Len(t, res.Pareto, 1)

	j := res.Pareto[0].Journey
	require.Equal(t, 1, j.Transfers)
	require.Equal(t, 2100.0, j.IVTT)
	require.Equal(t, 900.0, j.WaitTime)
	require.Len(t, j.Legs, 2)
}

// TestReconstructTripBasedWalkingTail covers the trailing-walk-leg case
// (best.Walking == true): no route serves the destination directly, only a
// footpath into it from the trip's alighting stop.
func TestReconstructTripBasedWalkingTail(t *testing.T) {
	stopY := timetable.StopID(4)
	route := timetable.RouteDef{
		ID:    1,
		Stops: []timetable.StopID{stopA, stopY},
		Trips: []timetable.Trip{
			{Index: 0, StopTimes: []timetable.StopTime{
				{Arrival: 9 * 3600, Departure: 9 * 3600},
				{Arrival: 9*3600 + 600, Departure: 9*3600 + 600},
			}},
		},
	}
	footpaths := map[timetable.StopID][]timetable.Footpath{
		stopY: {{To: stopB, Duration: 180}},
	}
	ix, err := timetable.Build([]timetable.StopID{stopA, stopY, stopB}, []timetable.RouteDef{route}, footpaths)
	require.NoError(t, err)

	cfg := raptor.Config{MaxTransfers: 0}
	pre := raptor.BuildTBTRPrecomputed(ix, stopB, cfg)
	departure := timetable.Timestamp(8 * 3600)
	tbtrRes, err := raptor.SolveTripBased(ix, stopA, stopB, departure, cfg, pre)
	require.NoError(t, err)
	require.NotNil(t, tbtrRes.J[0])
	require.True(t, tbtrRes.J[0].Walking)

	res, err := journey.ReconstructTripBased(ix, stopB, tbtrRes, &departure)
	require.NoError(t, err)
	require.Len(t, res.Pareto, 1)

	j := res.Pareto[0].Journey
	require.Equal(t, 0, j.Transfers)
	require.Len(t, j.Legs, 2)
	require.Equal(t, journey.LegRide, j.Legs[0].Mode)
	require.Equal(t, journey.LegWalk, j.Legs[1].Mode)
	require.Equal(t, stopY, j.Legs[1].FromStop)
	require.Equal(t, stopB, j.Legs[1].ToStop)
	require.Equal(t, 180.0, j.WalkTime)
	require.Equal(t, 600.0, j.IVTT)
}

func TestReconstructTripBasedAllUnreachable(t *testing.T) {
	ix, err := timetable.Build([]timetable.StopID{stopA, stopB}, nil, nil)
	require.NoError(t, err)

	cfg := raptor.Config{MaxTransfers: 1}
	pre := raptor.BuildTBTRPrecomputed(ix, stopB, cfg)
	departure := timetable.Timestamp(0)
	tbtrRes, err := raptor.SolveTripBased(ix, stopA, stopB, departure, cfg, pre)
	require.NoError(t, err)

	res, err := journey.ReconstructTripBased(ix, stopB, tbtrRes, &departure)
	require.NoError(t, err)
	require.Empty(t, res.Pareto)
}
