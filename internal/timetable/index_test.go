package timetable_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhanusml/transit-routing/internal/timetable"
)

func TestBuildRejectsNonFIFOTrips(t *testing.T) {
	route := timetable.RouteDef{
		ID:    1,
		Stops: []timetable.StopID{10, 20},
		Trips: []timetable.Trip{
			{Index: 0, StopTimes: []timetable.StopTime{{Arrival: 100, Departure: 100}, {Arrival: 200, Departure: 200}}},
			// Trip 1 departs stop 10 later than trip 0 but arrives stop 20
			// earlier: overtakes it, violating FIFO order.
			{Index: 1, StopTimes: []timetable.StopTime{{Arrival: 150, Departure: 150}, {Arrival: 180, Departure: 180}}},
		},
	}

	_, err := timetable.Build([]timetable.StopID{10, 20}, []timetable.RouteDef{route}, nil)
	require.ErrorIs(t, err, timetable.ErrScheduleInconsistency)
}

func TestBuildRejectsDuplicateStopOnRoute(t *testing.T) {
	route := timetable.RouteDef{
		ID:    1,
		Stops: []timetable.StopID{10, 10},
		Trips: nil,
	}
	_, err := timetable.Build([]timetable.StopID{10}, []timetable.RouteDef{route}, nil)
	require.ErrorIs(t, err, timetable.ErrDuplicateStopOnRoute)
}

func TestIndexLookups(t *testing.T) {
	route := timetable.RouteDef{
		ID:    1,
		Stops: []timetable.StopID{10, 20, 30},
		Trips: []timetable.Trip{
			{Index: 0, StopTimes: []timetable.StopTime{
				{Arrival: 0, Departure: 100},
				{Arrival: 200, Departure: 210},
				{Arrival: 300, Departure: 300},
			}},
		},
	}
	footpaths := map[timetable.StopID][]timetable.Footpath{
		10: {{To: 20, Duration: 60}},
	}

	ix, err := timetable.Build([]timetable.StopID{10, 20, 30}, []timetable.RouteDef{route}, footpaths)
	require.NoError(t, err)

	require.True(t, ix.HasStop(10))
	require.False(t, ix.HasStop(99))
	require.Equal(t, 3, ix.NumStops())

	pos, ok := ix.StopIndexOnRoute(1, 20)
	require.True(t, ok)
	require.Equal(t, 1, pos)

	require.Equal(t, []timetable.RouteID{1}, ix.RoutesByStop(20))
	require.Nil(t, ix.RoutesByStop(999))

	fps := ix.FootpathsFrom(10)
	require.Len(t, fps, 1)
	require.Equal(t, timetable.StopID(20), fps[0].To)

	idx, ok := ix.StopDenseIndex(30)
	require.True(t, ok)
	require.Equal(t, timetable.StopID(30), ix.StopAt(idx))
}

func TestTripIDRoundTrip(t *testing.T) {
	tid := timetable.TripID{Route: 42, Index: 3}
	require.Equal(t, "42_3", tid.String())

	parsed, err := timetable.ParseTripID("42_3")
	require.NoError(t, err)
	require.Equal(t, tid, parsed)

	_, err = timetable.ParseTripID("not-a-trip-id")
	require.Error(t, err)
}
