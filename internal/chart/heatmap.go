package chart

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"uofstats/internal/disparity"
	"uofstats/internal/race"
)

// ratioGrid adapts per-troop disparity tables to plotter.GridXYZ. Columns are
// race categories, rows are troops. Missing ratios are NaN.
type ratioGrid struct {
	troops []string
	races  []race.Category
	z      [][]float64 // [row][col]
}

func (g *ratioGrid) Dims() (c, r int)   { return len(g.races), len(g.troops) }
func (g *ratioGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g *ratioGrid) X(c int) float64    { return float64(c) }
func (g *ratioGrid) Y(r int) float64    { return float64(r) }

// TroopHeatmap renders disparity ratios by troop and race as a heatmap.
// The color scale is anchored so 1.0 (equal representation) sits at the
// midpoint; undefined ratios render in gray.
func (r *Renderer) TroopHeatmap(path, title string, tables []disparity.Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no troop tables to chart")
	}

	grid := &ratioGrid{races: race.Recognized}
	for _, t := range tables {
		row := make([]float64, len(grid.races))
		byRace := make(map[race.Category]float64, len(t.Rows))
		for _, tr := range t.Rows {
			byRace[tr.Race] = tr.Ratio
		}
		for i, cat := range grid.races {
			v, ok := byRace[cat]
			if !ok {
				v = math.NaN()
			}
			row[i] = v
		}
		grid.troops = append(grid.troops, troopLabel(t))
		grid.z = append(grid.z, row)
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMin(0)
	colors.SetMax(2)
	hm := plotter.NewHeatMap(grid, colors.Palette(255))
	hm.Min = 0
	hm.Max = 2 // ratios past 2.0 saturate at full red
	hm.NaN = rgb(0xE8, 0xE8, 0xE8)
	hm.Overflow = colors.Palette(255).Colors()[254]
	hm.Underflow = colors.Palette(255).Colors()[0]

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Citizen Race"
	p.Add(hm)

	xticks := make([]plot.Tick, len(grid.races))
	for i, cat := range grid.races {
		xticks[i] = plot.Tick{Value: float64(i), Label: string(cat)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xticks)

	yticks := make([]plot.Tick, len(grid.troops))
	for i, troop := range grid.troops {
		yticks[i] = plot.Tick{Value: float64(i), Label: troop}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)

	return r.save(p, path)
}

func troopLabel(t disparity.Table) string {
	label := strings.ToUpper(strings.TrimPrefix(t.Partition, "troop "))
	return fmt.Sprintf("Troop %s (n=%d)", label, t.TotalRecords)
}
