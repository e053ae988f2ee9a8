package disparity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uofstats/internal/citizen"
	"uofstats/internal/config"
	"uofstats/internal/race"
)

func newNormalizer(t *testing.T, policy config.UnknownPolicy) *race.Normalizer {
	t.Helper()
	cfg := config.Default().Races
	cfg.UnknownPolicy = policy
	return race.NewNormalizer(cfg)
}

func recordsWithRaces(races ...string) []citizen.Record {
	records := make([]citizen.Record, len(races))
	for i, r := range races {
		records[i] = citizen.Record{CitizenRace: r}
	}
	return records
}

func TestComputeRatios(t *testing.T) {
	// 60% of incidents vs 25% of population: ratio 2.4.
	records := recordsWithRaces("black", "black", "black", "white", "white")
	pop := []PopulationRow{
		{Troop: "troop a", Race: race.Black, Count: 1000},
		{Troop: "troop a", Race: race.White, Count: 3000},
	}

	tbl := Compute("overall", records, pop, newNormalizer(t, config.UnknownBucket))
	assert.Equal(t, 5, tbl.TotalRecords)
	assert.Equal(t, 4000, tbl.TotalPopulation)

	rows := rowsByRace(tbl)
	black := rows[race.Black]
	assert.InDelta(t, 0.6, black.IncidentShare, 1e-9)
	assert.InDelta(t, 0.25, black.PopulationShare, 1e-9)
	assert.InDelta(t, 2.4, black.Ratio, 1e-9)

	white := rows[race.White]
	assert.InDelta(t, 0.4, white.IncidentShare, 1e-9)
	assert.InDelta(t, 0.75, white.PopulationShare, 1e-9)
	assert.InDelta(t, 0.4/0.75, white.Ratio, 1e-9)
}

func TestComputeSharesSumToOne(t *testing.T) {
	records := recordsWithRaces("black", "white", "hispanic", "", "martian")
	pop := []PopulationRow{
		{Race: race.Black, Count: 100},
		{Race: race.White, Count: 200},
		{Race: race.Hispanic, Count: 50},
	}

	tbl := Compute("overall", records, pop, newNormalizer(t, config.UnknownBucket))

	incidentSum, popSum := 0.0, 0.0
	for _, r := range tbl.Rows {
		incidentSum += r.IncidentShare
		popSum += r.PopulationShare
	}
	assert.InDelta(t, 1.0, incidentSum, 1e-9)
	assert.InDelta(t, 1.0, popSum, 1e-9)
}

func TestComputeUndefinedRatio(t *testing.T) {
	// Unknown has no population denominator: its ratio must be undefined,
	// never zero.
	records := recordsWithRaces("black", "")
	pop := []PopulationRow{{Race: race.Black, Count: 100}}

	tbl := Compute("overall", records, pop, newNormalizer(t, config.UnknownBucket))
	rows := rowsByRace(tbl)

	unknown, ok := rows[race.Unknown]
	require.True(t, ok, "Unknown must appear when present in the records")
	assert.True(t, Undefined(unknown.Ratio))
	assert.False(t, unknown.Ratio == 0, "undefined ratio must not be zero")
	assert.InDelta(t, 0.5, unknown.IncidentShare, 1e-9)
}

func TestComputeUnknownOmittedWhenAbsent(t *testing.T) {
	records := recordsWithRaces("black", "white")
	pop := []PopulationRow{{Race: race.Black, Count: 100}}

	tbl := Compute("overall", records, pop, newNormalizer(t, config.UnknownBucket))
	for _, r := range tbl.Rows {
		assert.NotEqual(t, race.Unknown, r.Race)
	}
	// Recognized categories appear even with zero incident records.
	assert.Len(t, tbl.Rows, len(race.Recognized))
}

func TestComputeDropPolicy(t *testing.T) {
	records := recordsWithRaces("black", "martian", "martian")
	pop := []PopulationRow{{Race: race.Black, Count: 100}}

	tbl := Compute("overall", records, pop, newNormalizer(t, config.UnknownDrop))
	assert.Equal(t, 1, tbl.TotalRecords)
	assert.InDelta(t, 1.0, rowsByRace(tbl)[race.Black].IncidentShare, 1e-9)
}

func TestByYear(t *testing.T) {
	records := []citizen.Record{
		{CitizenRace: "black", Year: 2023},
		{CitizenRace: "white", Year: 2022},
		{CitizenRace: "black", Year: 2022},
		{CitizenRace: "black", Year: 0},
	}
	pop := []PopulationRow{{Race: race.Black, Count: 100}, {Race: race.White, Count: 100}}

	tables := ByYear(records, pop, newNormalizer(t, config.UnknownBucket))
	require.Len(t, tables, 3)
	assert.Equal(t, "unknown-year", tables[0].Partition)
	assert.Equal(t, "2022", tables[1].Partition)
	assert.Equal(t, "2023", tables[2].Partition)
	assert.Equal(t, 2, tables[1].TotalRecords)
}

func TestByTroopKeepsEmptyTroops(t *testing.T) {
	records := []citizen.Record{
		{CitizenRace: "black", DepartmentDesc: "troop a"},
	}
	pop := []PopulationRow{
		{Troop: "troop a", Race: race.Black, Count: 100},
		{Troop: "troop b", Race: race.Black, Count: 200},
	}

	tables := ByTroop(records, pop, newNormalizer(t, config.UnknownBucket))
	require.Len(t, tables, 2)
	assert.Equal(t, "troop a", tables[0].Partition)
	assert.Equal(t, 1, tables[0].TotalRecords)
	assert.Equal(t, "troop b", tables[1].Partition)
	assert.Equal(t, 0, tables[1].TotalRecords)

	// Denominators are troop-local, not statewide.
	assert.Equal(t, 100, tables[0].TotalPopulation)
	assert.Equal(t, 200, tables[1].TotalPopulation)
}

func TestUndefined(t *testing.T) {
	assert.True(t, Undefined(math.NaN()))
	assert.False(t, Undefined(0))
	assert.False(t, Undefined(2.4))
}

func rowsByRace(t Table) map[race.Category]Row {
	out := make(map[race.Category]Row, len(t.Rows))
	for _, r := range t.Rows {
		out[r.Race] = r
	}
	return out
}
