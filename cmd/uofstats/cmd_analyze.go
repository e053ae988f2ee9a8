package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uofstats/internal/census"
	"uofstats/internal/chart"
	"uofstats/internal/citizen"
	"uofstats/internal/disparity"
	"uofstats/internal/race"
	"uofstats/internal/store"
)

var analyzeDataset string

// analyzeCmd computes distributions and disparity tables and renders charts
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute race distributions, disparity tables and charts",
	Long: `Joins the citizen-level dataset against the troop demographics table
and computes, for the selected dataset variant:

  race distribution (overall and by year)
  disparity ratios (overall, by year, by troop)

plus a comparative disparity table across every variant present on disk.
Charts are written as PNGs under the output directory.

Requires the census and expand stages to have run; the filter stage is
optional (missing variants are skipped in the comparison).`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDataset, "dataset", "all",
		"variant to analyze: all, no-pursuit-only or no-pursuit")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()

	troopRows, err := census.ReadTable(cfg.OutPath("lsp_troop_demographics_16plus.csv"))
	if err != nil {
		return fmt.Errorf("census stage output missing, run `uofstats census` first: %w", err)
	}
	pop := census.PopulationRows(troopRows)
	norm := race.NewNormalizer(cfg.Races)

	primary, err := selectVariant(analyzeDataset)
	if err != nil {
		return err
	}
	records, err := citizen.ReadRecords(cfg.OutPath(primary.File))
	if err != nil {
		return fmt.Errorf("expand stage output missing, run `uofstats expand` first: %w", err)
	}
	logger.Info("analyzing dataset",
		zap.String("variant", primary.Name),
		zap.Int("records", len(records)))

	// Distribution and overall disparity for the selected variant.
	counts, err := disparity.CountDistribution(cfg.OutPath("race_distribution.csv"), records, norm)
	if err != nil {
		return err
	}
	overall := disparity.Compute("overall", records, pop, norm)
	if err := disparity.WriteTable(cfg.OutPath("disparity_overall.csv"), overall); err != nil {
		return err
	}

	byYear := disparity.ByYear(records, pop, norm)
	if err := disparity.WriteTables(cfg.OutPath("disparity_by_year.csv"), "year", byYear); err != nil {
		return err
	}
	byTroop := disparity.ByTroop(records, pop, norm)
	if err := disparity.WriteTables(cfg.OutPath("disparity_by_troop.csv"), "troop", byTroop); err != nil {
		return err
	}

	// Comparative table across whichever variants exist on disk.
	names, tables := loadVariantTables(pop, norm)
	if len(names) > 1 {
		if err := disparity.WriteComparison(cfg.OutPath("disparity_comparison.csv"), names, tables); err != nil {
			return err
		}
	}

	if err := renderCharts(primary.Name, counts, overall, byYear, byTroop, names, tables); err != nil {
		return err
	}

	recordRun(store.Run{
		Stage:    "analyze:" + primary.Key,
		Input:    cfg.OutPath(primary.File),
		Output:   cfg.Paths.OutputDir,
		Rows:     overall.TotalRecords,
		Duration: since(start),
	})
	return nil
}

func renderCharts(variant string, counts map[race.Category]int,
	overall disparity.Table, byYear, byTroop []disparity.Table,
	names []string, tables map[string]disparity.Table) error {

	r := chart.New(cfg.Charts)
	subtitle := fmt.Sprintf("Louisiana State Police - %s", variant)

	if err := r.Distribution(cfg.ChartPath("race_distribution.png"),
		"Use of Force Incidents by Citizen Race\n"+subtitle, counts); err != nil {
		return err
	}
	if err := r.PopulationComparison(cfg.ChartPath("population_normalized.png"),
		"Use of Force vs Population Demographics\n"+subtitle, overall); err != nil {
		return err
	}
	if len(byYear) > 0 {
		if err := r.ByYear(cfg.ChartPath("race_by_year.png"),
			"Use of Force Incidents by Citizen Race and Year\n"+subtitle, byYear); err != nil {
			return err
		}
	}
	if len(byTroop) > 0 {
		if err := r.TroopHeatmap(cfg.ChartPath("disparity_by_troop.png"),
			"Disparity Ratio by Troop and Race\n"+subtitle, byTroop); err != nil {
			return err
		}
	}
	if len(names) > 1 {
		if err := r.DisparityComparison(cfg.ChartPath("disparity_comparison.png"),
			"Disparity Ratios by Race - Comparative Analysis", names, tables); err != nil {
			return err
		}
	}

	logger.Info("rendered charts", zap.String("dir", cfg.ChartPath("")))
	return nil
}

// loadVariantTables computes overall disparity tables for every dataset
// variant present on disk, in canonical order.
func loadVariantTables(pop []disparity.PopulationRow, norm *race.Normalizer) ([]string, map[string]disparity.Table) {
	var names []string
	tables := make(map[string]disparity.Table)
	for _, v := range variants {
		path := cfg.OutPath(v.File)
		if _, err := os.Stat(path); err != nil {
			logger.Debug("variant not on disk, skipping", zap.String("variant", v.Name))
			continue
		}
		records, err := citizen.ReadRecords(path)
		if err != nil {
			logger.Warn("could not read variant, skipping",
				zap.String("variant", v.Name), zap.Error(err))
			continue
		}
		names = append(names, v.Name)
		tables[v.Name] = disparity.Compute(v.Name, records, pop, norm)
	}
	return names, tables
}

func selectVariant(key string) (datasetVariant, error) {
	for _, v := range variants {
		if v.Key == key {
			return v, nil
		}
	}
	return datasetVariant{}, fmt.Errorf("unknown dataset %q (want all, no-pursuit-only or no-pursuit)", key)
}
