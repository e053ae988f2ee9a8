package disparity

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"uofstats/internal/citizen"
	"uofstats/internal/race"
)

// markerUndefined is written wherever a ratio has no defined value.
const markerUndefined = "N/A"

// WriteDistribution writes per-race counts and shares, largest category
// first.
func WriteDistribution(path string, counts map[race.Category]int) error {
	type entry struct {
		cat race.Category
		n   int
	}
	entries := make([]entry, 0, len(counts))
	total := 0
	for cat, n := range counts {
		entries = append(entries, entry{cat, n})
		total += n
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].n != entries[j].n {
			return entries[i].n > entries[j].n
		}
		return entries[i].cat < entries[j].cat
	})

	rows := [][]string{{"race", "count", "share"}}
	for _, e := range entries {
		share := 0.0
		if total > 0 {
			share = float64(e.n) / float64(total)
		}
		rows = append(rows, []string{string(e.cat), strconv.Itoa(e.n), formatShare(share)})
	}
	return writeAll(path, rows)
}

// WriteTable writes a single disparity table.
func WriteTable(path string, t Table) error {
	rows := [][]string{{"race", "count", "incident_share", "population_share", "ratio"}}
	for _, r := range t.Rows {
		rows = append(rows, []string{
			string(r.Race),
			strconv.Itoa(r.Count),
			formatShare(r.IncidentShare),
			formatShare(r.PopulationShare),
			formatRatio(r.Ratio),
		})
	}
	return writeAll(path, rows)
}

// WriteTables writes partitioned disparity tables (by year or by troop) into
// one file with a leading partition column.
func WriteTables(path, partitionColumn string, tables []Table) error {
	rows := [][]string{{partitionColumn, "n", "race", "count", "incident_share", "population_share", "ratio"}}
	for _, t := range tables {
		for _, r := range t.Rows {
			rows = append(rows, []string{
				t.Partition,
				strconv.Itoa(t.TotalRecords),
				string(r.Race),
				strconv.Itoa(r.Count),
				formatShare(r.IncidentShare),
				formatShare(r.PopulationShare),
				formatRatio(r.Ratio),
			})
		}
	}
	return writeAll(path, rows)
}

// WriteComparison writes overall disparity tables for several dataset
// variants side by side, keyed by variant name.
func WriteComparison(path string, variants []string, tables map[string]Table) error {
	rows := [][]string{{"dataset", "n", "race", "count", "incident_share", "population_share", "ratio"}}
	for _, name := range variants {
		t, ok := tables[name]
		if !ok {
			return fmt.Errorf("no disparity table for variant %q", name)
		}
		for _, r := range t.Rows {
			rows = append(rows, []string{
				name,
				strconv.Itoa(t.TotalRecords),
				string(r.Race),
				strconv.Itoa(r.Count),
				formatShare(r.IncidentShare),
				formatShare(r.PopulationShare),
				formatRatio(r.Ratio),
			})
		}
	}
	return writeAll(path, rows)
}

// CountDistribution is a convenience wrapper pairing CountByRace with a file
// write for the analyze stage.
func CountDistribution(path string, records []citizen.Record, norm *race.Normalizer) (map[race.Category]int, error) {
	counts := CountByRace(records, norm)
	if err := WriteDistribution(path, counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func formatShare(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatRatio(v float64) string {
	if Undefined(v) {
		return markerUndefined
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func writeAll(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
