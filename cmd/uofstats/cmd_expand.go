package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uofstats/internal/citizen"
	"uofstats/internal/incident"
	"uofstats/internal/store"
)

var expandPairs bool

// expandCmd builds the citizen-level dataset from raw incident records
var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Expand raw incidents into the citizen-level dataset",
	Long: `Reads the raw use-of-force export (one row per incident, subjects
embedded as comma-separated fields) and writes one row per citizen, carrying
the incident-level fields onto each. With --pairs it also writes the
citizen-officer interaction dataset (one row per subject-officer pair).

Malformed rows are skipped and counted, never fatal.`,
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().BoolVar(&expandPairs, "pairs", true, "also write the citizen-officer pair dataset")
}

func runExpand(cmd *cobra.Command, args []string) error {
	start := time.Now()

	res, err := incident.ReadFile(cfg.Paths.RawIncidents, logger)
	if err != nil {
		return err
	}

	records := citizen.Expand(res.Incidents, logger)

	// Row-count invariant: one output row per subject, none dropped, none
	// synthesized.
	expected := 0
	for i := range res.Incidents {
		expected += res.Incidents[i].SubjectCount
	}
	if len(records) != expected {
		return fmt.Errorf("expansion invariant violated: %d records for %d subjects", len(records), expected)
	}

	outPath := cfg.OutPath("uof_citizen.csv")
	if err := citizen.WriteRecords(outPath, records); err != nil {
		return err
	}
	logger.Info("wrote citizen-level dataset",
		zap.String("path", outPath),
		zap.Int("records", len(records)))

	recordRun(store.Run{
		Stage:    "expand",
		Input:    cfg.Paths.RawIncidents,
		Output:   outPath,
		Rows:     len(records),
		Skipped:  res.Skipped,
		Duration: since(start),
	})

	if !expandPairs {
		return nil
	}

	pairStart := time.Now()
	pairs := citizen.ExpandPairs(res.Incidents, logger)
	pairPath := cfg.OutPath("uof_citizen_officer.csv")
	if err := citizen.WritePairs(pairPath, pairs); err != nil {
		return err
	}
	logger.Info("wrote citizen-officer dataset",
		zap.String("path", pairPath),
		zap.Int("records", len(pairs)))

	recordRun(store.Run{
		Stage:    "expand-pairs",
		Input:    cfg.Paths.RawIncidents,
		Output:   pairPath,
		Rows:     len(pairs),
		Skipped:  res.Skipped,
		Duration: since(pairStart),
	})
	return nil
}
