package timetable

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// Loader is the optional persistence adapter that materialises an Index
// from normalised Postgres tables. Nothing in internal/raptor,
// internal/journey or internal/query depends on it, and a caller may equally
// well construct an Index directly from RouteDef values (as the tests in
// this package do).
//
// Schema (no geometry columns: the Timetable Index's data model has no
// coordinates, so there is nothing for PostGIS to operate on):
//
//	stops(id bigint primary key)
//	routes(id bigint primary key)
//	route_stops(route_id bigint, stop_id bigint, position int)
//	trips(id bigint primary key, route_id bigint, trip_index int)
//	stop_times(trip_id bigint, position int, arrival bigint, departure bigint)
//	footpaths(from_stop bigint, to_stop bigint, duration_seconds bigint)
type Loader struct {
	db *pgxpool.Pool
}

// NewLoader wraps an already-connected pool.
func NewLoader(db *pgxpool.Pool) *Loader {
	return &Loader{db: db}
}

// Load reads the full timetable and returns a ready-to-query Index. It is
// intended to run once per process at startup; the returned Index is
// immutable and safe to share across every concurrent query.
func (l *Loader) Load(ctx context.Context) (*Index, error) {
	stopIDs, err := l.loadStopIDs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading stops")
	}

	routes, err := l.loadRoutes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading routes")
	}

	footpaths, err := l.loadFootpaths(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading footpaths")
	}

	ix, err := Build(stopIDs, routes, footpaths)
	if err != nil {
		return nil, errors.Wrap(err, "building timetable index")
	}
	return ix, nil
}

func (l *Loader) loadStopIDs(ctx context.Context) ([]StopID, error) {
	rows, err := l.db.Query(ctx, `SELECT id FROM stops`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []StopID
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, StopID(id))
	}
	return ids, rows.Err()
}

func (l *Loader) loadRoutes(ctx context.Context) ([]RouteDef, error) {
	routeRows, err := l.db.Query(ctx, `SELECT id FROM routes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	var routeIDs []RouteID
	for routeRows.Next() {
		var id int32
		if err := routeRows.Scan(&id); err != nil {
			routeRows.Close()
			return nil, err
		}
		routeIDs = append(routeIDs, RouteID(id))
	}
	routeRows.Close()
	if err := routeRows.Err(); err != nil {
		return nil, err
	}

	routes := make([]RouteDef, 0, len(routeIDs))
	for _, rid := range routeIDs {
		stops, err := l.loadRouteStops(ctx, rid)
		if err != nil {
			return nil, errors.Wrapf(err, "route %d stops", rid)
		}
		trips, err := l.loadRouteTrips(ctx, rid, len(stops))
		if err != nil {
			return nil, errors.Wrapf(err, "route %d trips", rid)
		}
		routes = append(routes, RouteDef{ID: rid, Stops: stops, Trips: trips})
	}
	return routes, nil
}

func (l *Loader) loadRouteStops(ctx context.Context, route RouteID) ([]StopID, error) {
	rows, err := l.db.Query(ctx, `
		SELECT stop_id FROM route_stops WHERE route_id = $1 ORDER BY position ASC
	`, route)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stops []StopID
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		stops = append(stops, StopID(id))
	}
	return stops, rows.Err()
}

func (l *Loader) loadRouteTrips(ctx context.Context, route RouteID, numStops int) ([]Trip, error) {
	tripRows, err := l.db.Query(ctx, `
		SELECT id, trip_index FROM trips WHERE route_id = $1 ORDER BY trip_index ASC
	`, route)
	if err != nil {
		return nil, err
	}
	type tripRow struct {
		id    int64
		index int
	}
	var raw []tripRow
	for tripRows.Next() {
		var tr tripRow
		if err := tripRows.Scan(&tr.id, &tr.index); err != nil {
			tripRows.Close()
			return nil, err
		}
		raw = append(raw, tr)
	}
	tripRows.Close()
	if err := tripRows.Err(); err != nil {
		return nil, err
	}

	trips := make([]Trip, 0, len(raw))
	for _, tr := range raw {
		stopTimes, err := l.loadStopTimes(ctx, tr.id, numStops)
		if err != nil {
			return nil, errors.Wrapf(err, "trip %d stop times", tr.id)
		}
		trips = append(trips, Trip{Index: tr.index, StopTimes: stopTimes})
	}
	return trips, nil
}

func (l *Loader) loadStopTimes(ctx context.Context, tripID int64, numStops int) ([]StopTime, error) {
	rows, err := l.db.Query(ctx, `
		SELECT position, arrival, departure FROM stop_times
		WHERE trip_id = $1 ORDER BY position ASC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StopTime, numStops)
	for rows.Next() {
		var pos int
		var st StopTime
		if err := rows.Scan(&pos, &st.Arrival, &st.Departure); err != nil {
			return nil, err
		}
		if pos < 0 || pos >= numStops {
			return nil, errors.Errorf("stop time position %d out of range [0,%d) for trip %d", pos, numStops, tripID)
		}
		out[pos] = st
	}
	return out, rows.Err()
}

func (l *Loader) loadFootpaths(ctx context.Context) (map[StopID][]Footpath, error) {
	rows, err := l.db.Query(ctx, `SELECT from_stop, to_stop, duration_seconds FROM footpaths`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[StopID][]Footpath)
	for rows.Next() {
		var from, to int32
		var dur int64
		if err := rows.Scan(&from, &to, &dur); err != nil {
			return nil, err
		}
		out[StopID(from)] = append(out[StopID(from)], Footpath{To: StopID(to), Duration: Timestamp(dur)})
	}
	return out, rows.Err()
}
