package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhanusml/transit-routing/internal/query"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

var optimizedTrips bool

var rangeCmd = &cobra.Command{
	Use:   "range <source_stop_id> <destination_stop_id> <window_start_seconds> <window_end_seconds>",
	Short: "Run a range (rRAPTOR) query over a departure window",
	Args:  cobra.ExactArgs(4),
	RunE:  runRange,
}

func init() {
	rangeCmd.Flags().BoolVarP(&optimizedTrips, "optimized-trips", "", false, "Track the trip-id cover instead of the route-id cover")
}

func runRange(cmd *cobra.Command, args []string) error {
	source, err := parseStopID(args[0])
	if err != nil {
		return err
	}
	destination, err := parseStopID(args[1])
	if err != nil {
		return err
	}
	start, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid window start %q: %w", args[2], err)
	}
	end, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid window end %q: %w", args[3], err)
	}

	ix, closeFn, err := loadIndex(context.Background())
	if err != nil {
		return err
	}
	defer closeFn()

	groups := query.BuildDepartureGroups(ix, source, timetable.Timestamp(start), timetable.Timestamp(end))
	optimized := query.OptimizedRoutes
	if optimizedTrips {
		optimized = query.OptimizedTrips
	}

	out, err := query.Range(ix, source, destination, groups, optimized, engineConfig())
	if err != nil {
		return err
	}

	for _, it := range out.Iterations {
		fmt.Printf("departure=%d pareto_size=%d\n", it.DepartureTime, len(it.Result.Pareto))
	}
	if optimizedTrips {
		fmt.Printf("trip_cover=%d\n", len(out.TripCover))
	} else {
		fmt.Printf("route_cover=%d\n", len(out.RouteCover))
	}
	return nil
}
