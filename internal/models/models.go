// Package models holds the plain metadata records the introspection
// endpoints return: route/stop descriptions, never routing state (that
// lives in internal/timetable.Index).
package models

import "github.com/dhanusml/transit-routing/internal/timetable"

// RouteInfo is a route's display metadata plus its stop count.
type RouteInfo struct {
	ID       timetable.RouteID `json:"id"`
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	NumStops int               `json:"num_stops,omitempty"`
}

// StopInfo is a stop's display metadata.
type StopInfo struct {
	ID       timetable.StopID `json:"id"`
	Code     string           `json:"code"`
	Name     string           `json:"name"`
	Sequence int              `json:"sequence,omitempty"`
}
