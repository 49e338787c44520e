package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhanusml/transit-routing/internal/query"
	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

func TestEarliestArrivalOneTransfer(t *testing.T) {
	ix := buildBranchingNetwork(t)
	cfg := raptor.Config{MaxTransfers: 1}

	res, err := query.EarliestArrival(ix, stopA, stopB, 8*3600+50*60, cfg)
	require.NoError(t, err)
	require.Len(t, res.Pareto, 1)
	require.Equal(t, 1, res.Pareto[0].Journey.Transfers)
}

func TestEarliestArrivalUnreachableIsEmptyPareto(t *testing.T) {
	ix := buildBranchingNetwork(t)
	cfg := raptor.Config{MaxTransfers: 1}

	// No trip on route 1 departs A after 23:00, so B is unreachable.
	res, err := query.EarliestArrival(ix, stopA, stopB, 23*3600, cfg)
	require.NoError(t, err)
	require.Empty(t, res.Pareto)
}

func TestEarliestArrivalInvalidStop(t *testing.T) {
	ix := buildBranchingNetwork(t)
	_, err := query.EarliestArrival(ix, stopA, 999, 0, raptor.Config{MaxTransfers: 1})
	require.ErrorIs(t, err, timetable.ErrInvalidStop)
}
