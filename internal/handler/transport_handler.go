// Package handler exposes the Query Drivers and the metadata repository
// over chi's router.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dhanusml/transit-routing/internal/query"
	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/repository"
	"github.com/dhanusml/transit-routing/internal/timetable"

	"github.com/go-chi/chi/v5"
)

// defaultMaxTransfers bounds the round loop when a request omits
// max_transfers.
const defaultMaxTransfers = 8

type TransportHandler struct {
	Repo  *repository.RouteRepository
	Index *timetable.Index
}

func NewTransportHandler(repo *repository.RouteRepository, ix *timetable.Index) *TransportHandler {
	return &TransportHandler{Repo: repo, Index: ix}
}

func (h *TransportHandler) GetAllRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.Repo.GetAllRoutes(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(routes)
}

func (h *TransportHandler) GetRouteDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.Error(w, "invalid route id", http.StatusBadRequest)
		return
	}

	route, stops, err := h.Repo.GetRouteDetails(r.Context(), timetable.RouteID(id))
	if err != nil {
		if repository.IsNoRows(err) {
			http.Error(w, "route not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"route": route, "stops": stops})
}

func (h *TransportHandler) GetStopDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.Error(w, "invalid stop id", http.StatusBadRequest)
		return
	}

	stop, routes, err := h.Repo.GetStopDetails(r.Context(), timetable.StopID(id))
	if err != nil {
		if repository.IsNoRows(err) {
			http.Error(w, "stop not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"stop": stop, "routes": routes})
}

// engineConfig reads the Round Engine parameters common to every journey
// endpoint from the query string, applying defaults where the caller omits
// them.
func engineConfig(r *http.Request) raptor.Config {
	cfg := raptor.Config{MaxTransfers: defaultMaxTransfers}
	if v := r.URL.Query().Get("max_transfers"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxTransfers = n
		}
	}
	if v := r.URL.Query().Get("change_time"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			cfg.ChangeTime = timetable.Timestamp(n)
		}
	}
	cfg.WalkingFromSource = r.URL.Query().Get("walking_from_source") == "true"
	return cfg
}

// GetJourney implements the earliest_arrival driver as an HTTP endpoint:
// GET /api/v1/journey?source=&destination=&departure=
func (h *TransportHandler) GetJourney(w http.ResponseWriter, r *http.Request) {
	source, destination, ok := parseStopPair(r)
	if !ok {
		http.Error(w, "missing or invalid source/destination", http.StatusBadRequest)
		return
	}
	departure, err := strconv.ParseInt(r.URL.Query().Get("departure"), 10, 64)
	if err != nil {
		http.Error(w, "missing or invalid departure", http.StatusBadRequest)
		return
	}

	res, err := query.EarliestArrival(h.Index, source, destination, timetable.Timestamp(departure), engineConfig(r))
	if err != nil {
		if err == timetable.ErrInvalidStop {
			http.Error(w, "unknown source or destination stop", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(res.Pareto) == 0 {
		http.Error(w, "no route found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(res)
}

// GetRangeJourneys implements the range driver as an HTTP endpoint:
// GET /api/v1/journey/range?source=&destination=&start=&end=&optimized=trips
func (h *TransportHandler) GetRangeJourneys(w http.ResponseWriter, r *http.Request) {
	source, destination, ok := parseStopPair(r)
	if !ok {
		http.Error(w, "missing or invalid source/destination", http.StatusBadRequest)
		return
	}
	start, err1 := strconv.ParseInt(r.URL.Query().Get("start"), 10, 64)
	end, err2 := strconv.ParseInt(r.URL.Query().Get("end"), 10, 64)
	if err1 != nil || err2 != nil || end <= start {
		http.Error(w, "missing or invalid start/end window", http.StatusBadRequest)
		return
	}

	optimized := query.OptimizedRoutes
	if r.URL.Query().Get("optimized") == "trips" {
		optimized = query.OptimizedTrips
	}

	groups := query.BuildDepartureGroups(h.Index, source, timetable.Timestamp(start), timetable.Timestamp(end))
	out, err := query.Range(h.Index, source, destination, groups, optimized, engineConfig(r))
	if err != nil {
		if err == timetable.ErrInvalidStop {
			http.Error(w, "unknown source or destination stop", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(out)
}

func parseStopPair(r *http.Request) (source, destination timetable.StopID, ok bool) {
	s, err1 := strconv.ParseInt(r.URL.Query().Get("source"), 10, 32)
	d, err2 := strconv.ParseInt(r.URL.Query().Get("destination"), 10, 32)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return timetable.StopID(s), timetable.StopID(d), true
}
