// Package timetable holds the Timetable Index: the immutable, preprocessed
// representation of stops, routes, trips and footpaths shared read-only by
// every query. Nothing in this package mutates after Build returns.
package timetable

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StopID, RouteID are opaque integer identifiers; both may be sparse and are
// remapped to dense indices internally by Index.
type StopID int32
type RouteID int32

// Timestamp is a count of seconds; the zero value has no special meaning,
// callers seed an explicit departure time. Infinity is the sentinel "no
// arrival known yet", fixed once rather than derived from wall-clock time.
type Timestamp int64

const Infinity Timestamp = math.MaxInt64 / 2

// TripID is the pair (route, index-within-route); it is stringly encoded as
// "<route_id>_<trip_index>" at the external boundary.
type TripID struct {
	Route RouteID
	Index int
}

func (t TripID) String() string {
	return fmt.Sprintf("%d_%d", t.Route, t.Index)
}

// ParseTripID recovers a TripID from its wire form, splitting on the final
// underscore and parsing the prefix as the route id.
func ParseTripID(s string) (TripID, error) {
	i := strings.LastIndexByte(s, '_')
	if i < 0 {
		return TripID{}, fmt.Errorf("timetable: malformed trip id %q", s)
	}
	route, err := strconv.ParseInt(s[:i], 10, 32)
	if err != nil {
		return TripID{}, fmt.Errorf("timetable: malformed trip id %q: %w", s, err)
	}
	index, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return TripID{}, fmt.Errorf("timetable: malformed trip id %q: %w", s, err)
	}
	return TripID{Route: RouteID(route), Index: index}, nil
}

// StopTime is one (arrival, departure) pair for a trip at one position along
// its route's stop sequence.
type StopTime struct {
	Arrival   Timestamp
	Departure Timestamp
}

// Trip belongs to exactly one route; StopTimes is aligned index-for-index
// with that route's Stops and must be non-decreasing along the sequence.
type Trip struct {
	Index     int
	StopTimes []StopTime
}

// RouteDef is the loader-facing shape of a route before it enters the Index:
// an ordered stop sequence plus its FIFO-ordered trips.
type RouteDef struct {
	ID    RouteID
	Stops []StopID
	Trips []Trip
}

// Footpath is a directed walking edge. The implicit self-loop (s, s, 0) is
// never stored; transitive closure is not assumed.
type Footpath struct {
	To       StopID
	Duration Timestamp
}
