package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhanusml/transit-routing/internal/query"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

func TestBuildDepartureGroupsWithinWindow(t *testing.T) {
	ix := buildBranchingNetwork(t)

	groups := query.BuildDepartureGroups(ix, stopA, 0, 100000)
	require.ElementsMatch(t, []timetable.Timestamp{8 * 3600, 9 * 3600}, groups[stopA])
}

func TestBuildDepartureGroupsExcludesOutOfWindow(t *testing.T) {
	ix := buildBranchingNetwork(t)

	groups := query.BuildDepartureGroups(ix, stopA, 8*3600+1800, 100000)
	require.ElementsMatch(t, []timetable.Timestamp{9 * 3600}, groups[stopA])
}

func TestBuildDepartureGroupsUnservedStop(t *testing.T) {
	isolated := timetable.StopID(99)
	ix, err := timetable.Build([]timetable.StopID{stopA, isolated}, nil, nil)
	require.NoError(t, err)

	groups := query.BuildDepartureGroups(ix, isolated, 0, 100000)
	require.Empty(t, groups[isolated])
}
