// Package repository backs the introspection handlers with plain metadata
// lookups (route/stop display names). It never touches routing state; the
// Timetable Index is the sole source of truth for anything the Round
// Engine or Query Drivers consume.
package repository

import (
	"context"
	"errors"

	"github.com/dhanusml/transit-routing/internal/models"
	"github.com/dhanusml/transit-routing/internal/timetable"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouteRepository reads route/stop metadata from the same Postgres schema
// timetable.Loader reads from, but selects the descriptive columns the
// Loader itself has no use for (code, name). No geometry columns: the
// Timetable Index's data model has no coordinates.
type RouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) *RouteRepository {
	return &RouteRepository{db: db}
}

func (r *RouteRepository) GetAllRoutes(ctx context.Context) ([]models.RouteInfo, error) {
	query := `
		SELECT r.id, COALESCE(r.code, ''), COALESCE(r.name, ''),
		       (SELECT COUNT(*) FROM route_stops WHERE route_id = r.id) as num_stops
		FROM routes r
		ORDER BY r.id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RouteInfo
	for rows.Next() {
		var ri models.RouteInfo
		if err := rows.Scan(&ri.ID, &ri.Code, &ri.Name, &ri.NumStops); err != nil {
			return nil, err
		}
		out = append(out, ri)
	}
	return out, rows.Err()
}

func (r *RouteRepository) GetRouteDetails(ctx context.Context, route timetable.RouteID) (*models.RouteInfo, []models.StopInfo, error) {
	var ri models.RouteInfo
	err := r.db.QueryRow(ctx, `
		SELECT id, COALESCE(code, ''), COALESCE(name, '') FROM routes WHERE id = $1
	`, route).Scan(&ri.ID, &ri.Code, &ri.Name)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT s.id, COALESCE(s.code, ''), COALESCE(s.name, ''), rs.position
		FROM stops s
		JOIN route_stops rs ON rs.stop_id = s.id
		WHERE rs.route_id = $1
		ORDER BY rs.position ASC
	`, route)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var stops []models.StopInfo
	for rows.Next() {
		var si models.StopInfo
		if err := rows.Scan(&si.ID, &si.Code, &si.Name, &si.Sequence); err != nil {
			return nil, nil, err
		}
		stops = append(stops, si)
	}
	ri.NumStops = len(stops)
	return &ri, stops, rows.Err()
}

func (r *RouteRepository) GetStopDetails(ctx context.Context, stop timetable.StopID) (*models.StopInfo, []models.RouteInfo, error) {
	var si models.StopInfo
	err := r.db.QueryRow(ctx, `
		SELECT id, COALESCE(code, ''), COALESCE(name, '') FROM stops WHERE id = $1
	`, stop).Scan(&si.ID, &si.Code, &si.Name)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT r.id, COALESCE(r.code, ''), COALESCE(r.name, '')
		FROM routes r
		JOIN route_stops rs ON rs.route_id = r.id
		WHERE rs.stop_id = $1
		ORDER BY r.id ASC
	`, stop)
	if err != nil {
		return &si, nil, err
	}
	defer rows.Close()

	var routes []models.RouteInfo
	for rows.Next() {
		var ri models.RouteInfo
		if err := rows.Scan(&ri.ID, &ri.Code, &ri.Name); err != nil {
			return &si, nil, err
		}
		routes = append(routes, ri)
	}
	return &si, routes, rows.Err()
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
