package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/dhanusml/transit-routing/internal/query"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

var (
	batchWorkers int
	batchOutPath string
)

var batchCmd = &cobra.Command{
	Use:   "batch <od_pairs.csv>",
	Short: "Run a batch of independent OD queries, writing CSV rows for each Pareto-optimal journey",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 4, "Number of concurrent queries")
	batchCmd.Flags().StringVarP(&batchOutPath, "out", "o", "", "Output CSV path (defaults to stdout)")
}

// odRow is one input line: origin, destination, departure_time (seconds).
type odRow struct {
	Origin        int32 `csv:"origin"`
	Destination   int32 `csv:"destination"`
	DepartureTime int64 `csv:"departure_time"`
}

// resultRow is one output line of the batch CSV.
type resultRow struct {
	Origin        int32   `csv:"origin"`
	Destination   int32   `csv:"destination"`
	DepartureTime int64   `csv:"departure_time"`
	Transfers     int     `csv:"transfers"`
	WalkTime      float64 `csv:"walk_time"`
	WaitTime      float64 `csv:"wait_time"`
	OVTT          float64 `csv:"ovtt"`
	IVTT          float64 `csv:"ivtt"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	in, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer in.Close()

	var rows []*odRow
	if err := gocsv.UnmarshalFile(in, &rows); err != nil {
		return fmt.Errorf("parsing OD pairs csv: %w", err)
	}

	queries := make([]query.ODQuery, len(rows))
	for i, r := range rows {
		queries[i] = query.ODQuery{
			Source:      timetable.StopID(r.Origin),
			Destination: timetable.StopID(r.Destination),
			Departure:   timetable.Timestamp(r.DepartureTime),
		}
	}

	ix, closeFn, err := loadIndex(context.Background())
	if err != nil {
		return err
	}
	defer closeFn()

	cfg := query.BatchConfig{Workers: batchWorkers, Engine: engineConfig()}
	results, err := query.RunBatch(context.Background(), ix, queries, cfg)
	if err != nil {
		return fmt.Errorf("running batch: %w", err)
	}

	out := make([]*resultRow, 0, len(results))
	for _, r := range results {
		out = append(out, &resultRow{
			Origin:        int32(r.Query.Source),
			Destination:   int32(r.Query.Destination),
			DepartureTime: int64(r.Query.Departure),
			Transfers:     r.Transfers,
			WalkTime:      r.WalkTime,
			WaitTime:      r.WaitTime,
			OVTT:          r.OVTT,
			IVTT:          r.IVTT,
		})
	}

	writer := os.Stdout
	if batchOutPath != "" {
		f, err := os.Create(batchOutPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", batchOutPath, err)
		}
		defer f.Close()
		writer = f
	}
	return gocsv.MarshalFile(&out, writer)
}
