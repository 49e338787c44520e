package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhanusml/transit-routing/internal/query"
	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

func TestRangeTwoDeparturesBothOneTransfer(t *testing.T) {
	ix := buildBranchingNetwork(t)
	groups := query.BuildDepartureGroups(ix, stopA, 0, 100000)
	cfg := raptor.Config{MaxTransfers: 1}

	out, err := query.Range(ix, stopA, stopB, groups, query.OptimizedTrips, cfg)
	require.NoError(t, err)
	require.Len(t, out.Iterations, 2)

	// Seeds are processed in descending departure order: 09:00 first.
	require.Equal(t, timetable.Timestamp(9*3600), out.Iterations[0].DepartureTime)
	require.Len(t, out.Iterations[0].Result.Pareto, 1)
	require.Equal(t, 1, out.Iterations[0].Result.Pareto[0].Journey.Transfers)

	require.Equal(t, timetable.Timestamp(8*3600), out.Iterations[1].DepartureTime)
	require.Len(t, out.Iterations[1].Result.Pareto, 1)
	require.Equal(t, 1, out.Iterations[1].Result.Pareto[0].Journey.Transfers)

	// Both iterations' ride legs go into the trip cover: route1's two trips
	// and route2's two trips.
	require.Len(t, out.TripCover, 4)
	require.Nil(t, out.RouteCover)
}

func TestRangeOptimizedRoutes(t *testing.T) {
	ix := buildBranchingNetwork(t)
	groups := query.BuildDepartureGroups(ix, stopA, 0, 100000)
	cfg := raptor.Config{MaxTransfers: 1}

	out, err := query.Range(ix, stopA, stopB, groups, query.OptimizedRoutes, cfg)
	require.NoError(t, err)
	require.Nil(t, out.TripCover)
	require.ElementsMatch(t, []timetable.RouteID{1, 2}, out.RouteCover)
}

func TestRangeRejectsUnknownStop(t *testing.T) {
	ix := buildBranchingNetwork(t)
	groups := query.BuildDepartureGroups(ix, stopA, 0, 100000)
	_, err := query.Range(ix, stopA, 999, groups, query.OptimizedTrips, raptor.Config{MaxTransfers: 1})
	require.ErrorIs(t, err, timetable.ErrInvalidStop)
}
