package main

import (
	"context"
	"fmt"

	"github.com/dhanusml/transit-routing/internal/raptor"
	"github.com/dhanusml/transit-routing/internal/timetable"

	"github.com/jackc/pgx/v5/pgxpool"
)

func loadIndex(ctx context.Context) (*timetable.Index, func(), error) {
	url := resolveDBURL()
	if url == "" {
		return nil, nil, fmt.Errorf("no database URL: pass --db or set DATABASE_URL")
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	ix, err := timetable.NewLoader(pool).Load(ctx)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("loading timetable index: %w", err)
	}
	return ix, pool.Close, nil
}

func engineConfig() raptor.Config {
	return raptor.Config{
		MaxTransfers:      maxTransfers,
		ChangeTime:        timetable.Timestamp(changeTime),
		WalkingFromSource: walkFromSrc,
	}
}
