// Package config holds all uofstats configuration. Defaults cover the
// Louisiana State Police 2022-2024 dataset; a YAML file overrides them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UnknownPolicy controls what happens to race values outside the recognized
// category set.
type UnknownPolicy string

const (
	// UnknownBucket folds unrecognized values into the Unknown category so
	// row-count invariants hold.
	UnknownBucket UnknownPolicy = "bucket"
	// UnknownDrop removes rows with unrecognized race values from analysis
	// output (the rows still exist in the citizen-level dataset).
	UnknownDrop UnknownPolicy = "drop"
)

// Config holds all uofstats configuration.
type Config struct {
	// Paths configures input and output locations.
	Paths PathsConfig `yaml:"paths"`

	// Census configures the Census API stage.
	Census CensusConfig `yaml:"census"`

	// Races configures race category normalization.
	Races RacesConfig `yaml:"races"`

	// Charts configures chart rendering.
	Charts ChartsConfig `yaml:"charts"`
}

// PathsConfig configures where the pipeline reads and writes.
type PathsConfig struct {
	// RawIncidents is the raw use-of-force CSV (one row per incident).
	RawIncidents string `yaml:"raw_incidents"`

	// OutputDir receives all generated tables, charts and reports.
	// Everything under it is fully regenerated each run.
	OutputDir string `yaml:"output_dir"`

	// RunsDB is the SQLite run manifest database.
	RunsDB string `yaml:"runs_db"`
}

// CensusConfig configures the ACS demographics fetch.
type CensusConfig struct {
	// Vintage is the ACS 5-year estimate release year.
	Vintage string `yaml:"vintage"`

	// Dataset is the Census API dataset path.
	Dataset string `yaml:"dataset"`

	// StateFIPS is the state to query (22 = Louisiana).
	StateFIPS string `yaml:"state_fips"`

	// APIKeyEnv names the environment variable holding the Census API key.
	APIKeyEnv string `yaml:"api_key_env"`

	// BaseURL overrides the Census API endpoint (tests use this).
	BaseURL string `yaml:"base_url"`
}

// RacesConfig configures race category handling.
type RacesConfig struct {
	// Aliases maps lowercased source values to canonical category names.
	Aliases map[string]string `yaml:"aliases"`

	// UnknownPolicy is bucket (default) or drop. The original scripts were
	// inconsistent here, so it is configurable rather than hard-coded.
	UnknownPolicy UnknownPolicy `yaml:"unknown_policy"`
}

// ChartsConfig configures chart rendering.
type ChartsConfig struct {
	// WidthInches and HeightInches size the rendered PNGs.
	WidthInches  float64 `yaml:"width_inches"`
	HeightInches float64 `yaml:"height_inches"`
}

// Default returns the configuration used when no YAML file is present.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			RawIncidents: "input/lsp_uof_22_24.csv",
			OutputDir:    "out",
			RunsDB:       "out/uofstats_runs.db",
		},
		Census: CensusConfig{
			Vintage:   "2022",
			Dataset:   "acs/acs5",
			StateFIPS: "22",
			APIKeyEnv: "CENSUS_API_KEY",
			BaseURL:   "https://api.census.gov/data",
		},
		Races: RacesConfig{
			Aliases: map[string]string{
				"black":                            "Black",
				"white":                            "White",
				"hispanic":                         "Hispanic",
				"asian":                            "Asian / Pacific Islander",
				"pacific islander":                 "Asian / Pacific Islander",
				"native hawaiian":                  "Asian / Pacific Islander",
				"american indian or alaska native": "Native American",
				"native american":                  "Native American",
				"unknown":                          "Unknown",
			},
			UnknownPolicy: UnknownBucket,
		},
		Charts: ChartsConfig{
			WidthInches:  12,
			HeightInches: 7,
		},
	}
}

// Load reads a YAML config file layered over the defaults. A missing file is
// not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail deep inside a stage.
func (c *Config) Validate() error {
	switch c.Races.UnknownPolicy {
	case UnknownBucket, UnknownDrop:
	default:
		return fmt.Errorf("races.unknown_policy must be %q or %q, got %q",
			UnknownBucket, UnknownDrop, c.Races.UnknownPolicy)
	}
	if c.Paths.OutputDir == "" {
		return fmt.Errorf("paths.output_dir is required")
	}
	if c.Census.StateFIPS == "" {
		return fmt.Errorf("census.state_fips is required")
	}
	return nil
}

// APIKey resolves the Census API key from the configured environment variable.
func (c *Config) APIKey() string {
	return os.Getenv(c.Census.APIKeyEnv)
}

// OutPath joins a name onto the output directory.
func (c *Config) OutPath(name string) string {
	return filepath.Join(c.Paths.OutputDir, name)
}

// ChartPath joins a name onto the chart output directory.
func (c *Config) ChartPath(name string) string {
	return filepath.Join(c.Paths.OutputDir, "charts", name)
}
