package census

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"uofstats/internal/race"
)

func TestGroupVariables(t *testing.T) {
	vars := group{key: "black", table: "B"}.variables()
	require.Len(t, vars, 20, "10 male + 10 female 16+ age bands")
	assert.Equal(t, "B01001B_007E", vars[0])
	assert.Equal(t, "B01001B_016E", vars[9])
	assert.Equal(t, "B01001B_022E", vars[10])
	assert.Equal(t, "B01001B_031E", vars[19])
}

func TestGeographyCoversAllParishes(t *testing.T) {
	assert.Len(t, parishFIPS, 64, "Louisiana has 64 parishes")

	covered := make(map[string]int)
	for troop, parishes := range troopCoverage {
		for _, p := range parishes {
			if _, ok := parishFIPS[p]; !ok {
				t.Errorf("troop %s covers unknown parish %q", troop, p)
			}
			covered[p]++
		}
	}
	for p := range parishFIPS {
		switch covered[p] {
		case 1:
		case 2:
			if !splitParishes[p] {
				t.Errorf("parish %q covered by two troops but not marked split", p)
			}
		default:
			t.Errorf("parish %q covered by %d troops", p, covered[p])
		}
	}
	for p := range splitParishes {
		if covered[p] != 2 {
			t.Errorf("split parish %q covered by %d troops, want 2", p, covered[p])
		}
	}
}

func TestAggregateCombinesAsianPacific(t *testing.T) {
	parishes := []Parish{
		{Name: "Orleans", County: "071", Counts: map[string]int{
			"black": 1000, "white": 2000, "hispanic": 300,
			"native_american": 50, "asian": 120, "pacific_islander": 30,
		}},
	}

	rows := Aggregate(parishes, zap.NewNop())
	nola := findTroop(t, rows, "Troop NOLA")

	assert.Equal(t, 150, nola.Counts[race.AsianPacific])
	assert.Equal(t, 1000+2000+300+50+150, nola.Total)
}

func TestAggregateSplitsParishes(t *testing.T) {
	counts := map[string]int{"black": 1001, "white": 2000}
	parishes := []Parish{
		{Name: "St. James", Counts: counts},
		{Name: "St. John the Baptist", Counts: counts},
	}

	rows := Aggregate(parishes, zap.NewNop())

	// St. James splits across Troops A and C, St. John the Baptist across
	// Troops B and C. Halves truncate per parish: 1001 -> 500 each side.
	troopA := findTroop(t, rows, "Troop A")
	troopB := findTroop(t, rows, "Troop B")
	troopC := findTroop(t, rows, "Troop C")
	assert.Equal(t, 500, troopA.Counts[race.Black])
	assert.Equal(t, 500, troopB.Counts[race.Black])
	assert.Equal(t, 1000, troopC.Counts[race.Black])
	assert.Equal(t, 1000, troopA.Counts[race.White])
	assert.Equal(t, 2000, troopC.Counts[race.White])
}

func TestAggregateMissingParishSkipped(t *testing.T) {
	rows := Aggregate(nil, zap.NewNop())
	require.Len(t, rows, len(troopOrder))
	for _, row := range rows {
		assert.Equal(t, 0, row.Total)
	}
}

func TestTroopRowPercent(t *testing.T) {
	row := TroopRow{
		Counts: map[race.Category]int{race.Black: 333, race.White: 667},
		Total:  1000,
	}
	assert.Equal(t, 33.3, row.Percent(race.Black))
	assert.Equal(t, 66.7, row.Percent(race.White))
	assert.Equal(t, 0.0, TroopRow{}.Percent(race.Black))
}

func findTroop(t *testing.T, rows []TroopRow, troop string) TroopRow {
	t.Helper()
	for _, row := range rows {
		if row.Troop == troop {
			return row
		}
	}
	t.Fatalf("troop %q not in aggregate output", troop)
	return TroopRow{}
}
