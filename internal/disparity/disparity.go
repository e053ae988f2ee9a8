// Package disparity computes per-race incident shares, population shares and
// disparity ratios from citizen-level records and census denominators.
package disparity

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"uofstats/internal/citizen"
	"uofstats/internal/race"
)

// PopulationRow is one census denominator: the 16+ population of a race
// category within a troop coverage area. Read-only reference data.
type PopulationRow struct {
	Troop string // lowercased troop label, e.g. "troop a"
	Race  race.Category
	Count int
}

// Row is the disparity result for one race category within a partition.
// Ratio is NaN when the population share is zero: undefined, never reported
// as zero.
type Row struct {
	Race            race.Category
	Count           int
	IncidentShare   float64
	PopulationShare float64
	Ratio           float64
}

// Table is the disparity result for one partition of the citizen-level data:
// overall, a single year, or a single troop.
type Table struct {
	Partition       string
	TotalRecords    int
	TotalPopulation int
	Rows            []Row
}

// Undefined reports whether a ratio value is the undefined marker.
func Undefined(ratio float64) bool {
	return math.IsNaN(ratio)
}

// Compute builds the disparity table for a set of records against population
// denominators. Records with unrecognized race values follow the normalizer's
// policy: bucketed into Unknown or dropped from the partition entirely.
// Every category that appears in the records is emitted even when it has no
// population denominator.
func Compute(partition string, records []citizen.Record, pop []PopulationRow, norm *race.Normalizer) Table {
	counts := CountByRace(records, norm)

	total := 0
	for _, n := range counts {
		total += n
	}

	popByRace := make(map[race.Category]int)
	totalPop := 0
	for _, p := range pop {
		popByRace[p.Race] += p.Count
		totalPop += p.Count
	}

	t := Table{
		Partition:       partition,
		TotalRecords:    total,
		TotalPopulation: totalPop,
	}
	for _, cat := range categoriesFor(counts) {
		n := counts[cat]
		row := Row{
			Race:  cat,
			Count: n,
			Ratio: math.NaN(),
		}
		if total > 0 {
			row.IncidentShare = float64(n) / float64(total)
		}
		if totalPop > 0 {
			row.PopulationShare = float64(popByRace[cat]) / float64(totalPop)
		}
		if row.PopulationShare > 0 {
			row.Ratio = row.IncidentShare / row.PopulationShare
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ByYear partitions records by incident year and computes one table per year,
// in ascending year order. Population denominators are constant across years.
func ByYear(records []citizen.Record, pop []PopulationRow, norm *race.Normalizer) []Table {
	byYear := make(map[int][]citizen.Record)
	for _, r := range records {
		byYear[r.Year] = append(byYear[r.Year], r)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	tables := make([]Table, 0, len(years))
	for _, y := range years {
		tables = append(tables, Compute(yearLabel(y), byYear[y], pop, norm))
	}
	return tables
}

// ByTroop partitions records by department and computes one table per troop
// against that troop's own denominators. Troops present in the census but
// with zero incident records still yield a table so the heatmap grid stays
// rectangular.
func ByTroop(records []citizen.Record, pop []PopulationRow, norm *race.Normalizer) []Table {
	byTroop := make(map[string][]citizen.Record)
	for _, r := range records {
		byTroop[strings.ToLower(r.DepartmentDesc)] = append(byTroop[strings.ToLower(r.DepartmentDesc)], r)
	}

	popByTroop := make(map[string][]PopulationRow)
	for _, p := range pop {
		popByTroop[p.Troop] = append(popByTroop[p.Troop], p)
	}
	troops := make([]string, 0, len(popByTroop))
	for troop := range popByTroop {
		troops = append(troops, troop)
	}
	sort.Strings(troops)

	tables := make([]Table, 0, len(troops))
	for _, troop := range troops {
		tables = append(tables, Compute(troop, byTroop[troop], popByTroop[troop], norm))
	}
	return tables
}

// CountByRace tallies records per canonical race category after
// normalization.
func CountByRace(records []citizen.Record, norm *race.Normalizer) map[race.Category]int {
	counts := make(map[race.Category]int)
	for _, r := range records {
		cat, keep := norm.Normalize(r.CitizenRace)
		if !keep {
			continue
		}
		counts[cat]++
	}
	return counts
}

// categoriesFor returns the canonical output ordering: every recognized
// category, then Unknown, then any other category present in the counts.
// Unknown appears only when present so the overall table matches the census
// columns when no race data is missing.
func categoriesFor(counts map[race.Category]int) []race.Category {
	cats := append([]race.Category{}, race.Recognized...)
	if counts[race.Unknown] > 0 {
		cats = append(cats, race.Unknown)
	}

	var extra []race.Category
	seen := make(map[race.Category]bool, len(cats))
	for _, c := range cats {
		seen[c] = true
	}
	for c := range counts {
		if !seen[c] {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(cats, extra...)
}

func yearLabel(y int) string {
	if y == 0 {
		return "unknown-year"
	}
	return strconv.Itoa(y)
}
