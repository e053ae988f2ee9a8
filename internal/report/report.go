// Package report writes the plain-text comparative summary across dataset
// variants.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"uofstats/internal/disparity"
	"uofstats/internal/race"
)

// Summary describes one comparative report.
type Summary struct {
	Title           string
	TotalPopulation int
	Variants        []string // display order
	Tables          map[string]disparity.Table
}

// Write renders the summary report, replacing any previous file.
func Write(path string, s Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(Render(s)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Render builds the report text.
func Render(s Summary) string {
	var b strings.Builder
	rule := strings.Repeat("=", 90)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, s.Title)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "\nTotal Population (16+): %d\n", s.TotalPopulation)

	if base, ok := s.Tables[s.Variants[0]]; ok && len(s.Variants) > 1 {
		fmt.Fprintln(&b, "\nRecords removed by filtering:")
		for _, name := range s.Variants[1:] {
			t := s.Tables[name]
			removed := base.TotalRecords - t.TotalRecords
			pct := 0.0
			if base.TotalRecords > 0 {
				pct = float64(removed) / float64(base.TotalRecords) * 100
			}
			fmt.Fprintf(&b, "  %s: %d (%.1f%%)\n", name, removed, pct)
		}
	}

	for _, name := range s.Variants {
		t, ok := s.Tables[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s (n=%d)\n", strings.ToUpper(name), t.TotalRecords)
		fmt.Fprintln(&b, strings.Repeat("-", 80))
		fmt.Fprintf(&b, "%-26s %8s %10s %10s %12s\n", "Race", "Count", "UoF %", "Pop %", "Disparity")
		fmt.Fprintln(&b, strings.Repeat("-", 80))
		for _, row := range t.Rows {
			fmt.Fprintf(&b, "%-26s %8d %9.1f%% %9.1f%% %12s\n",
				row.Race, row.Count,
				row.IncidentShare*100, row.PopulationShare*100,
				formatRatio(row))
		}
	}

	fmt.Fprintln(&b, "\nNotes:")
	fmt.Fprintln(&b, "- Disparity ratio is UoF share divided by population share.")
	fmt.Fprintln(&b, "- A ratio above 1.0 indicates over-representation in UoF incidents.")
	fmt.Fprintf(&b, "- %s has no population denominator, so its ratio is N/A.\n", race.Unknown)
	fmt.Fprintln(&b, rule)
	return b.String()
}

func formatRatio(row disparity.Row) string {
	if disparity.Undefined(row.Ratio) {
		return "N/A"
	}
	return fmt.Sprintf("%.2fx", row.Ratio)
}
