// Command raptorctl is the CLI driver for offline queries against a
// Timetable Index: single earliest-arrival lookups, range queries over a
// departure window, and CSV batch runs over many OD pairs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "raptorctl",
	Short:        "Earliest-arrival journey planning over a Timetable Index",
	SilenceUsage: true,
}

var (
	dbURL        string
	maxTransfers int
	changeTime   int64
	walkFromSrc  bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbURL, "db", "", "", "Timetable database URL (defaults to $DATABASE_URL)")
	rootCmd.PersistentFlags().IntVarP(&maxTransfers, "max-transfers", "", 8, "Maximum number of transfers")
	rootCmd.PersistentFlags().Int64VarP(&changeTime, "change-time", "", 0, "Minimum change time in seconds")
	rootCmd.PersistentFlags().BoolVarP(&walkFromSrc, "walk-from-source", "", false, "Seed round 0 with one footpath hop from the source")

	rootCmd.AddCommand(earliestCmd)
	rootCmd.AddCommand(rangeCmd)
	rootCmd.AddCommand(batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func resolveDBURL() string {
	if dbURL != "" {
		return dbURL
	}
	return os.Getenv("DATABASE_URL")
}
