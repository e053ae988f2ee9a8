package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uofstats/internal/store"
)

var runsLimit int

// runsCmd lists recorded pipeline runs
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded pipeline runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum runs to list")
}

func runRuns(cmd *cobra.Command, args []string) error {
	s, err := store.Open(cfg.Paths.RunsDB)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.Recent(runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded yet")
		return nil
	}

	fmt.Printf("%-20s %-22s %8s %8s %8s %10s\n",
		"STARTED", "STAGE", "ROWS", "SKIPPED", "DROPPED", "DURATION")
	for _, r := range runs {
		fmt.Printf("%-20s %-22s %8d %8d %8d %10s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Stage, r.Rows, r.Skipped, r.Dropped, r.Duration)
	}
	return nil
}
