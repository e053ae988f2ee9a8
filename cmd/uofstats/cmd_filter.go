package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uofstats/internal/citizen"
	"uofstats/internal/store"
)

type datasetVariant struct {
	Key  string // flag value selecting this variant
	Name string // display name in reports and comparison tables
	File string
	Mode citizen.FilterMode // empty for the unfiltered dataset
}

// Dataset variants derived from the citizen-level dataset. Paths are relative
// to the output directory.
var variants = []datasetVariant{
	{Key: "all", Name: "All Incidents", File: "uof_citizen.csv"},
	{Key: "no-pursuit-only", Name: "Pursuit-Only Excluded", File: "uof_citizen_no_pursuit_only.csv", Mode: citizen.PursuitOnly},
	{Key: "no-pursuit", Name: "All Pursuits Excluded", File: "uof_citizen_no_pursuit.csv", Mode: citizen.AllPursuit},
}

// filterCmd derives the pursuit-excluded dataset variants
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Derive pursuit-excluded variants of the citizen-level dataset",
	Long: `Writes two filtered copies of the citizen-level dataset:

  pursuit-only excluded: rows whose officer force is exactly "Pursuit"
  all pursuits excluded: rows whose officer force list contains "Pursuit"`,
	RunE: runFilter,
}

func runFilter(cmd *cobra.Command, args []string) error {
	records, err := citizen.ReadRecords(cfg.OutPath(variants[0].File))
	if err != nil {
		return err
	}

	for _, v := range variants[1:] {
		start := time.Now()
		kept, removed := citizen.FilterPursuit(records, v.Mode, logger)

		outPath := cfg.OutPath(v.File)
		if err := citizen.WriteRecords(outPath, kept); err != nil {
			return err
		}
		logger.Info("wrote filtered dataset",
			zap.String("variant", v.Name),
			zap.String("path", outPath),
			zap.Int("records", len(kept)))

		recordRun(store.Run{
			Stage:    "filter:" + string(v.Mode),
			Input:    cfg.OutPath(variants[0].File),
			Output:   outPath,
			Rows:     len(kept),
			Dropped:  removed,
			Duration: since(start),
		})
	}
	return nil
}
