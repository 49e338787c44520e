package journey_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhanusml/transit-routing/internal/journey"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

// TestBuildJourneyDirectRide covers a single ride leg with a departure time
// set before boarding, exercising the wait-time derivation.
func TestBuildJourneyDirectRide(t *testing.T) {
	dep := timetable.Timestamp(8*3600 + 55*60)
	legs := []journey.Leg{
		{Mode: journey.LegRide, FromStop: 1, ToStop: 2, StartTime: 9 * 3600, EndTime: 9*3600 + 600, Duration: 600},
	}
	j := journey.BuildJourney(legs, &dep)

	require.Equal(t, 0, j.Transfers)
	require.Equal(t, 600.0, j.IVTT)
	require.Equal(t, 300.0, j.WaitTime)
	require.Equal(t, 0.0, j.WalkTime)
	require.Equal(t, 300.0, j.OVTT)
}

// TestBuildJourneyWalkFallback covers a journey made of a single walk leg,
// with no ride legs to derive a transfer count or IVTT from.
func TestBuildJourneyWalkFallback(t *testing.T) {
	dep := timetable.Timestamp(8 * 3600)
	legs := []journey.Leg{
		{Mode: journey.LegWalk, FromStop: 1, ToStop: 2, StartTime: 8 * 3600, EndTime: 8*3600 + 120, Duration: 120},
	}
	j := journey.BuildJourney(legs, &dep)

	require.Equal(t, 0, j.Transfers)
	require.Equal(t, 0.0, j.IVTT)
	require.Equal(t, 120.0, j.OVTT)
}

// TestBuildJourneyOneTransfer covers two ride legs with a wait in between,
// exercising the transfer count and the inter-leg wait accumulation.
func TestBuildJourneyOneTransfer(t *testing.T) {
	dep := timetable.Timestamp(8*3600 + 50*60)
	legs := []journey.Leg{
		{Mode: journey.LegRide, FromStop: 1, ToStop: 3, StartTime: 9 * 3600, EndTime: 9*3600 + 900, Duration: 900, Trip: timetable.TripID{Route: 1, Index: 0}},
		{Mode: journey.LegRide, FromStop: 3, ToStop: 2, StartTime: 9*3600 + 1200, EndTime: 9*3600 + 2400, Duration: 1200, Trip: timetable.TripID{Route: 2, Index: 0}},
	}
	j := journey.BuildJourney(legs, &dep)

	require.Equal(t, 1, j.Transfers)
	require.Equal(t, 2100.0, j.IVTT)
	require.Equal(t, 900.0, j.WaitTime)
}

func TestBuildJourneyNoDepartureWalkOpens(t *testing.T) {
	legs := []journey.Leg{
		{Mode: journey.LegWalk, FromStop: 1, ToStop: 2, StartTime: 100, EndTime: 150, Duration: 50},
		{Mode: journey.LegRide, FromStop: 2, ToStop: 3, StartTime: 200, EndTime: 260, Duration: 60},
	}
	j := journey.BuildJourney(legs, nil)

	// The initial wait before the walk leg is skipped (no departure given
	// and the journey opens with a walk); only the gap between the walk's
	// end and the ride's start counts as wait.
	require.Equal(t, 50.0, j.WaitTime)
	require.Equal(t, 50.0, j.WalkTime)
	require.Equal(t, 60.0, j.IVTT)
}

func TestBuildJourneyEmptyLegs(t *testing.T) {
	j := journey.BuildJourney(nil, nil)
	require.Equal(t, journey.Journey{}, j)
}
