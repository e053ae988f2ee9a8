package chart

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uofstats/internal/config"
	"uofstats/internal/disparity"
	"uofstats/internal/race"
)

func testRenderer() *Renderer {
	// Small canvas keeps the tests fast.
	return New(config.ChartsConfig{WidthInches: 6, HeightInches: 4})
}

// requirePNG asserts the renderer produced a non-empty PNG at path.
func requirePNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	sig := make([]byte, 4)
	_, err = f.Read(sig)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, sig)
}

func sampleTable(partition string) disparity.Table {
	return disparity.Table{
		Partition:    partition,
		TotalRecords: 10,
		Rows: []disparity.Row{
			{Race: race.Black, Count: 6, IncidentShare: 0.6, PopulationShare: 0.25, Ratio: 2.4},
			{Race: race.White, Count: 3, IncidentShare: 0.3, PopulationShare: 0.65, Ratio: 0.46},
			{Race: race.Unknown, Count: 1, IncidentShare: 0.1, Ratio: math.NaN()},
		},
	}
}

func TestDistribution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "race_distribution.png")
	counts := map[race.Category]int{
		race.Black:   120,
		race.White:   60,
		race.Unknown: 5,
	}
	require.NoError(t, testRenderer().Distribution(path, "Incidents by Race", counts))
	requirePNG(t, path)
}

func TestPopulationComparison(t *testing.T) {
	path := filepath.Join(t.TempDir(), "population_normalized.png")
	require.NoError(t, testRenderer().PopulationComparison(path, "UoF vs Population", sampleTable("overall")))
	requirePNG(t, path)
}

func TestByYear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "race_by_year.png")
	tables := []disparity.Table{sampleTable("2022"), sampleTable("2023"), sampleTable("2024")}
	require.NoError(t, testRenderer().ByYear(path, "Incidents by Year", tables))
	requirePNG(t, path)

	err := testRenderer().ByYear(path, "empty", nil)
	require.Error(t, err)
}

func TestDisparityComparison(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disparity_comparison.png")
	names := []string{"All Incidents", "All Pursuits Excluded"}
	tables := map[string]disparity.Table{
		names[0]: sampleTable(names[0]),
		names[1]: sampleTable(names[1]),
	}
	require.NoError(t, testRenderer().DisparityComparison(path, "Disparity Ratios", names, tables))
	requirePNG(t, path)
}

func TestTroopHeatmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disparity_by_troop.png")
	tables := []disparity.Table{sampleTable("troop a"), sampleTable("troop nola")}
	require.NoError(t, testRenderer().TroopHeatmap(path, "Disparity by Troop", tables))
	requirePNG(t, path)

	err := testRenderer().TroopHeatmap(path, "empty", nil)
	require.Error(t, err)
}

func TestTroopLabel(t *testing.T) {
	tbl := disparity.Table{Partition: "troop nola", TotalRecords: 42}
	assert.Equal(t, "Troop NOLA (n=42)", troopLabel(tbl))
}
