package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhanusml/transit-routing/internal/timetable"
)

const (
	stopA timetable.StopID = 1
	stopB timetable.StopID = 2
	stopX timetable.StopID = 3
	stopC timetable.StopID = 4
)

// buildBranchingNetwork builds A->X on route 1 (two trips, 08:00 and 09:00),
// X->B on route 2 (two trips, 08:20 and 09:20) and X->C on route 3 (one trip,
// 09:20), so a query from A can reach either B or C with exactly one
// transfer at X.
func buildBranchingNetwork(t *testing.T) *timetable.Index {
	t.Helper()
	route1 := timetable.RouteDef{
		ID:    1,
		Stops: []timetable.StopID{stopA, stopX},
		Trips: []timetable.Trip{
			{Index: 0, StopTimes: []timetable.StopTime{
				{Arrival: 8 * 3600, Departure: 8 * 3600},
				{Arrival: 8*3600 + 900, Departure: 8*3600 + 900},
			}},
			{Index: 1, StopTimes: []timetable.StopTime{
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
				{Arrival: 8*3600 + 1200, Departure: 8*3600 + 1200},
				{Arrival: 8*3600 + 2400, Departure: 8*3600 + 2400},
			}},
			{Index: 1, StopTimes: []timetable.StopTime{
				{Arrival: 9*3600 + 1200, Departure: 9*3600 + 1200},
				{Arrival: 9*3600 + 2400, Departure: 9*3600 + 2400},
			}},
		},
	}
	route3 := timetable.RouteDef{
		ID:    3,
		Stops: []timetable.StopID{stopX, stopC},
		Trips: []timetable.Trip{
			{Index: 0, StopTimes: []timetable.StopTime{
				{Arrival: 9*3600 + 1200, Departure: 9*3600 + 1200},
				{Arrival: 9*3600 + 3000, Departure: 9*3600 + 3000},
			}},
		},
	}
	ix, err := timetable.Build([]timetable.StopID{stopA, stopX, stopB, stopC}, []timetable.RouteDef{route1, route2, route3}, nil)
	require.NoError(t, err)
	return ix
}
