package query

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

// ODQuery is one row of a batch request: an independent origin-destination
// query at a fixed departure time.
type ODQuery struct {
	Source      timetable.StopID
	Destination timetable.StopID
	Departure   timetable.Timestamp
}

// BatchRow is one Pareto-optimal journey's metrics for one ODQuery, matching
// the batch CSV's columns.
type BatchRow struct {
	Query     ODQuery
	Transfers int
	WalkTime  float64
	WaitTime  float64
	OVTT      float64
	IVTT      float64
}

// BatchConfig bounds the worker pool and carries the Round Engine
// configuration shared by every query in the batch.
type BatchConfig struct {
	Workers int
	Engine  raptor.Config
}

// RunBatch runs every ODQuery through EarliestArrival over a bounded worker
// pool; queries share nothing mutable but the read-only Timetable Index. An
// invalid-stop query aborts the whole batch; an unreachable query
// contributes no rows, matching the single-query driver's encoding of that
// outcome as an empty Pareto set rather than a Go error.
func RunBatch(ctx context.Context, ix *timetable.Index, queries []ODQuery, cfg BatchConfig) ([]BatchRow, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	perQuery := make([][]BatchRow, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := EarliestArrival(ix, q.Source, q.Destination, q.Departure, cfg.Engine)
			if err != nil {
				return err
			}
			rows := make([]BatchRow, 0, len(res.Pareto))
			for _, entry := range res.Pareto {
				rows = append(rows, BatchRow{
					Query:     q,
					Transfers: entry.Journey.Transfers,
					WalkTime:  entry.Journey.WalkTime,
					WaitTime:  entry.Journey.WaitTime,
					OVTT:      entry.Journey.OVTT,
					IVTT:      entry.Journey.IVTT,
				})
			}
			perQuery[i] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []BatchRow
	for _, rows := range perQuery {
		out = append(out, rows...)
	}
	return out, nil
}
