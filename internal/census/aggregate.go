package census

import (
	"math"

	"go.uber.org/zap"

	"uofstats/internal/race"
)

// raceColumns maps demographics table keys to canonical race categories.
// Asian and Pacific Islander collapse into one category here.
var raceColumns = []struct {
	Key string
	Cat race.Category
}{
	{"black", race.Black},
	{"white", race.White},
	{"hispanic", race.Hispanic},
	{"native_american", race.NativeAmerican},
	{"asian_pacific_islander", race.AsianPacific},
}

// TroopRow is the 16+ population of one troop coverage area by race.
type TroopRow struct {
	Troop  string
	Counts map[race.Category]int
	Total  int
}

// Percent returns a race's share of the troop population in percent, rounded
// to one decimal.
func (t TroopRow) Percent(cat race.Category) float64 {
	if t.Total == 0 {
		return 0
	}
	pct := float64(t.Counts[cat]) / float64(t.Total) * 100
	return math.Round(pct*10) / 10
}

// Aggregate rolls parish demographics up to troop coverage areas. Split
// parishes contribute half their population to each covering troop. A parish
// named in the coverage map but missing from the fetched data logs a warning
// and is skipped.
func Aggregate(parishes []Parish, log *zap.Logger) []TroopRow {
	byName := make(map[string]Parish, len(parishes))
	for _, p := range parishes {
		byName[p.Name] = p
	}

	rows := make([]TroopRow, 0, len(troopOrder))
	for _, troop := range troopOrder {
		row := TroopRow{
			Troop:  troop,
			Counts: make(map[race.Category]int, len(raceColumns)),
		}

		for _, parish := range troopCoverage[troop] {
			p, ok := byName[parish]
			if !ok {
				log.Warn("no census data for parish",
					zap.String("troop", troop),
					zap.String("parish", parish))
				continue
			}

			multiplier := 1.0
			if splitParishes[parish] {
				multiplier = 0.5
			}

			row.Counts[race.Black] += scaled(p.Counts["black"], multiplier)
			row.Counts[race.White] += scaled(p.Counts["white"], multiplier)
			row.Counts[race.Hispanic] += scaled(p.Counts["hispanic"], multiplier)
			row.Counts[race.NativeAmerican] += scaled(p.Counts["native_american"], multiplier)
			row.Counts[race.AsianPacific] += scaled(p.Counts["asian"]+p.Counts["pacific_islander"], multiplier)
		}

		for _, col := range raceColumns {
			row.Total += row.Counts[col.Cat]
		}
		rows = append(rows, row)
	}
	return rows
}

// scaled truncates toward zero after applying the split-parish multiplier,
// matching how the published demographics table was produced.
func scaled(count int, multiplier float64) int {
	return int(float64(count) * multiplier)
}
