package census

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"uofstats/internal/disparity"
	"uofstats/internal/race"
)

// Demographics table column names, fixed so downstream consumers can rely on
// them.
var tableHeader = []string{
	"troop",
	"black_16plus", "white_16plus", "hispanic_16plus",
	"native_american_16plus", "asian_pacific_islander_16plus",
	"total_16plus",
	"black_pct", "white_pct", "hispanic_pct",
	"native_american_pct", "asian_pacific_islander_pct",
}

var countColumns = map[string]race.Category{
	"black_16plus":                  race.Black,
	"white_16plus":                  race.White,
	"hispanic_16plus":               race.Hispanic,
	"native_american_16plus":        race.NativeAmerican,
	"asian_pacific_islander_16plus": race.AsianPacific,
}

// WriteTable writes the troop demographics table, replacing any previous
// file.
func WriteTable(path string, rows []TroopRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tableHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Troop,
			strconv.Itoa(row.Counts[race.Black]),
			strconv.Itoa(row.Counts[race.White]),
			strconv.Itoa(row.Counts[race.Hispanic]),
			strconv.Itoa(row.Counts[race.NativeAmerican]),
			strconv.Itoa(row.Counts[race.AsianPacific]),
			strconv.Itoa(row.Total),
			formatPct(row.Percent(race.Black)),
			formatPct(row.Percent(race.White)),
			formatPct(row.Percent(race.Hispanic)),
			formatPct(row.Percent(race.NativeAmerican)),
			formatPct(row.Percent(race.AsianPacific)),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", row.Troop, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// ReadTable loads a troop demographics table written by WriteTable.
func ReadTable(path string) ([]TroopRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open demographics table: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	if _, ok := idx["troop"]; !ok {
		return nil, fmt.Errorf("%s is not a demographics table: missing troop column", path)
	}

	var rows []TroopRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read error in %s: %w", path, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		row := TroopRow{
			Troop:  get("troop"),
			Counts: make(map[race.Category]int, len(countColumns)),
		}
		for col, cat := range countColumns {
			n, _ := strconv.Atoi(get(col))
			row.Counts[cat] = n
		}
		if total := get("total_16plus"); total != "" {
			row.Total, _ = strconv.Atoi(total)
		} else {
			for _, n := range row.Counts {
				row.Total += n
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// PopulationRows flattens the troop table into the (troop, race, count) form
// the disparity calculator joins against. Troop labels are lowercased to
// match the citizen dataset's department_desc key.
func PopulationRows(rows []TroopRow) []disparity.PopulationRow {
	var out []disparity.PopulationRow
	for _, row := range rows {
		for _, col := range raceColumns {
			out = append(out, disparity.PopulationRow{
				Troop: strings.ToLower(row.Troop),
				Race:  col.Cat,
				Count: row.Counts[col.Cat],
			})
		}
	}
	return out
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
