package query

import "github.com/dhanusml/transit-routing/internal/timetable"

// BuildDepartureGroups derives one stop's DepartureGroups entry by scanning
// every route serving it and collecting each trip's scheduled departure
// there within [start, end). This is the straightforward construction the
// range driver assumes upstream of it; callers with a richer timetable
// source (frequency-based headways) may build a DepartureGroups value some
// other way instead.
func BuildDepartureGroups(ix *timetable.Index, stop timetable.StopID, start, end timetable.Timestamp) DepartureGroups {
	groups := make(DepartureGroups)
	for _, r := range ix.RoutesByStop(stop) {
		pos, ok := ix.StopIndexOnRoute(r, stop)
		if !ok {
			continue
		}
		for _, t := range ix.TripsOfRoute(r) {
			dep := t.StopTimes[pos].Departure
			if dep >= start && dep < end {
				groups[stop] = append(groups[stop], dep)
			}
		}
	}
	return groups
}
