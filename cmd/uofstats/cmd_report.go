package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uofstats/internal/census"
	"uofstats/internal/race"
	"uofstats/internal/report"
	"uofstats/internal/store"
)

// reportCmd writes the plain-text summary report
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the comparative plain-text summary report",
	Long: `Renders summary_report.txt: overall disparity tables for every
dataset variant present on disk, side by side, with filtering counts.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	start := time.Now()

	troopRows, err := census.ReadTable(cfg.OutPath("lsp_troop_demographics_16plus.csv"))
	if err != nil {
		return fmt.Errorf("census stage output missing, run `uofstats census` first: %w", err)
	}
	pop := census.PopulationRows(troopRows)
	totalPop := 0
	for _, t := range troopRows {
		totalPop += t.Total
	}

	norm := race.NewNormalizer(cfg.Races)
	names, tables := loadVariantTables(pop, norm)
	if len(names) == 0 {
		return fmt.Errorf("no datasets found under %s, run `uofstats expand` first", cfg.Paths.OutputDir)
	}

	outPath := cfg.OutPath("summary_report.txt")
	s := report.Summary{
		Title:           "Louisiana State Police Use of Force: Racial Disparity Summary",
		TotalPopulation: totalPop,
		Variants:        names,
		Tables:          tables,
	}
	if err := report.Write(outPath, s); err != nil {
		return err
	}
	logger.Info("wrote summary report",
		zap.String("path", outPath),
		zap.Strings("variants", names))

	recordRun(store.Run{
		Stage:    "report",
		Input:    cfg.OutPath(variants[0].File),
		Output:   outPath,
		Rows:     tables[names[0]].TotalRecords,
		Duration: since(start),
	})
	return nil
}
