package raptor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

func TestSolveTripBasedOneTransfer(t *testing.T) {
	ix := buildTransferNetwork(t)
	cfg := raptor.Config{MaxTransfers: 1}

	pre := raptor.BuildTBTRPrecomputed(ix, stopB, cfg)
	res, err := raptor.SolveTripBased(ix, stopA, stopB, 8*3600+50*60, cfg, pre)
	require.NoError(t, err)
	require.Len(t, res.J, 2)

	// J[0] (exactly zero transfers) never reaches B: no single trip serves
	// both A and B directly in this network.
	require.Nil(t, res.J[0])

	// J[1] (exactly one transfer) reaches B at 09:40 via the X transfer.
	require.NotNil(t, res.J[1])
	require.Equal(t, timetable.Timestamp(9*3600+2400), res.J[1].ArrivalTime)
	require.False(t, res.J[1].Walking)
	require.Equal(t, timetable.TripID{Route: 2, Index: 0}, res.J[1].Entry.Trip)
	require.NotNil(t, res.J[1].Entry.Parent)
	require.Equal(t, timetable.TripID{Route: 1, Index: 0}, res.J[1].Entry.Parent.Trip)
}

func TestSolveTripBasedChangeTimeEnforcement(t *testing.T) {
	ix := buildTransferNetwork(t)
	cfg := raptor.Config{MaxTransfers: 1, ChangeTime: 600}

	pre := raptor.BuildTBTRPrecomputed(ix, stopB, cfg)
	res, err := raptor.SolveTripBased(ix, stopA, stopB, 8*3600+50*60, cfg, pre)
	require.NoError(t, err)

	// The 600s change time pushes the earliest boardable departure on
	// route2 past its only trip's departure, same as the standard engine's
	// TestSolveChangeTimeEnforcement.
	require.Nil(t, res.J[0])
	require.Nil(t, res.J[1])
}

func TestSolveTripBasedZeroTransferDirect(t *testing.T) {
	ix := buildDirectRoute(t)
	cfg := raptor.Config{MaxTransfers: 1}

	pre := raptor.BuildTBTRPrecomputed(ix, stopB, cfg)
	res, err := raptor.SolveTripBased(ix, stopA, stopB, 8*3600+55*60, cfg, pre)
	require.NoError(t, err)

	require.NotNil(t, res.J[0])
	require.Equal(t, timetable.Timestamp(9*3600+600), res.J[0].ArrivalTime)
	require.Nil(t, res.J[0].Entry.Parent)
}

func TestSolveTripBasedRejectsUnknownStops(t *testing.T) {
	ix := buildDirectRoute(t)
	cfg := raptor.Config{MaxTransfers: 0}
	pre := raptor.BuildTBTRPrecomputed(ix, stopB, cfg)
	_, err := raptor.SolveTripBased(ix, stopA, 999, 0, cfg, pre)
	require.ErrorIs(t, err, timetable.ErrInvalidStop)
}
