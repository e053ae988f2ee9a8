package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uofstats/internal/census"
	"uofstats/internal/store"
)

// censusCmd fetches ACS demographics and writes the troop demographics table
var censusCmd = &cobra.Command{
	Use:   "census",
	Short: "Fetch 16+ population by race for each troop coverage area",
	Long: `Pulls ACS 5-year estimates from the Census API (one call per race
table), aggregates parish populations to troop coverage areas with the
50/50 split parishes, and writes the troop demographics table.

The API key is read from the environment variable named in the config
(CENSUS_API_KEY by default). Get a free key at
https://api.census.gov/data/key_signup.html`,
	RunE: runCensus,
}

func runCensus(cmd *cobra.Command, args []string) error {
	start := time.Now()

	client := census.NewClient(cfg.Census, cfg.APIKey(), logger)
	parishes, err := client.FetchParishes(cmd.Context())
	if err != nil {
		return err
	}

	rows := census.Aggregate(parishes, logger)
	outPath := cfg.OutPath("lsp_troop_demographics_16plus.csv")
	if err := census.WriteTable(outPath, rows); err != nil {
		return err
	}

	total := 0
	for _, row := range rows {
		total += row.Total
	}
	logger.Info("wrote troop demographics",
		zap.String("path", outPath),
		zap.Int("troops", len(rows)),
		zap.Int("total_population", total))

	recordRun(store.Run{
		Stage:    "census",
		Input:    fmt.Sprintf("%s/%s/%s state:%s", cfg.Census.BaseURL, cfg.Census.Vintage, cfg.Census.Dataset, cfg.Census.StateFIPS),
		Output:   outPath,
		Rows:     len(rows),
		Duration: since(start),
	})
	return nil
}
