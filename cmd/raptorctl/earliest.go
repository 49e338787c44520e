package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhanusml/transit-routing/internal/query"
	"github.com/dhanusml/transit-routing/internal/timetable"
)

var earliestCmd = &cobra.Command{
	Use:   "earliest <source_stop_id> <destination_stop_id> <departure_seconds>",
	Short: "Run a single earliest-arrival query",
	Args:  cobra.ExactArgs(3),
	RunE:  runEarliest,
}

func runEarliest(cmd *cobra.Command, args []string) error {
	source, err := parseStopID(args[0])
	if err != nil {
		return err
	}
	destination, err := parseStopID(args[1])
	if err != nil {
		return err
	}
	departure, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid departure time %q: %w", args[2], err)
	}

	ix, closeFn, err := loadIndex(context.Background())
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := query.EarliestArrival(ix, source, destination, timetable.Timestamp(departure), engineConfig())
	if err != nil {
		return err
	}
	if len(res.Pareto) == 0 {
		fmt.Println("no journey found")
		return nil
	}
	for _, entry := range res.Pareto {
		j := entry.Journey
		fmt.Printf("round=%d transfers=%d walk=%.2f wait=%.2f ovtt=%.2f ivtt=%.2f legs=%d\n",
			entry.Round, j.Transfers, j.WalkTime, j.WaitTime, j.OVTT, j.IVTT, len(j.Legs))
	}
	return nil
}

func parseStopID(s string) (timetable.StopID, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid stop id %q: %w", s, err)
	}
	return timetable.StopID(n), nil
}
