package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"uofstats/internal/config"
	"uofstats/internal/store"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "uofstats",
	Short: "Louisiana State Police use-of-force disparity analysis pipeline",
	Long: `uofstats is a batch analysis pipeline for Louisiana State Police
use-of-force data (2022-2024).

It pulls census demographics for each troop coverage area, expands raw
incident records into citizen-level rows, and compares incident demographics
against population demographics to produce disparity tables, charts and a
summary report.

Typical run order:
  uofstats census    # fetch ACS population data per troop
  uofstats expand    # raw incidents -> citizen-level dataset
  uofstats filter    # derive the pursuit-excluded dataset variants
  uofstats analyze   # distributions, disparity tables and charts
  uofstats report    # comparative text summary`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zapCfg := zap.NewProductionConfig()
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "uofstats.yaml", "path to config file")

	rootCmd.AddCommand(censusCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(runsCmd)
}

// recordRun appends a stage run to the manifest store. Manifest failures are
// warnings: provenance must never break the pipeline itself.
func recordRun(run store.Run) {
	s, err := store.Open(cfg.Paths.RunsDB)
	if err != nil {
		logger.Warn("could not open run manifest", zap.Error(err))
		return
	}
	defer s.Close()

	if _, err := s.Record(run); err != nil {
		logger.Warn("could not record run", zap.Error(err))
		return
	}
	logger.Debug("recorded run",
		zap.String("stage", run.Stage),
		zap.Int("rows", run.Rows))
}

// since rounds elapsed time so every stage reports duration the same way.
func since(start time.Time) time.Duration {
	return time.Since(start).Round(time.Millisecond)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
