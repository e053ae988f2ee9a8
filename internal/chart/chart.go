// Package chart renders the pipeline's static PNG visualizations with
// gonum/plot: race distribution bars, population comparison bars, year-over-
// year grouped bars and the disparity-by-troop heatmap.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"uofstats/internal/config"
	"uofstats/internal/disparity"
	"uofstats/internal/race"
)

// Renderer draws charts at a configured size.
type Renderer struct {
	width  vg.Length
	height vg.Length
}

// New builds a Renderer from chart config.
func New(cfg config.ChartsConfig) *Renderer {
	return &Renderer{
		width:  vg.Length(cfg.WidthInches) * vg.Inch,
		height: vg.Length(cfg.HeightInches) * vg.Inch,
	}
}

// categoryColors follows the palette of the published analysis.
var categoryColors = map[race.Category]color.Color{
	race.Black:          rgb(0x4A, 0x90, 0xE2),
	race.White:          rgb(0x7E, 0xD3, 0x21),
	race.Unknown:        rgb(0x9B, 0x9B, 0x9B),
	race.Hispanic:       rgb(0xF5, 0xA6, 0x23),
	race.AsianPacific:   rgb(0xBD, 0x10, 0xE0),
	race.NativeAmerican: rgb(0xD0, 0x02, 0x1B),
}

var fallbackColor = rgb(0x50, 0xE3, 0xC2)

// groupPalette colors grouped series (years or dataset variants).
var groupPalette = []color.Color{
	rgb(0x2E, 0x86, 0xAB),
	rgb(0xA2, 0x3B, 0x72),
	rgb(0xF1, 0x8F, 0x01),
	rgb(0x7E, 0xD3, 0x21),
	rgb(0xBD, 0x10, 0xE0),
}

// Distribution renders a bar chart of incident counts per race, largest
// category first.
func (r *Renderer) Distribution(path, title string, counts map[race.Category]int) error {
	type entry struct {
		cat race.Category
		n   int
	}
	entries := make([]entry, 0, len(counts))
	for cat, n := range counts {
		entries = append(entries, entry{cat, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].n != entries[j].n {
			return entries[i].n > entries[j].n
		}
		return entries[i].cat < entries[j].cat
	})

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Citizen Race"
	p.Y.Label.Text = "Number of Incidents"

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = string(e.cat)

		bar, err := singleBar(float64(e.n), i, len(entries), colorFor(e.cat))
		if err != nil {
			return err
		}
		p.Add(bar)
	}
	p.NominalX(names...)

	return r.save(p, path)
}

// PopulationComparison renders population share versus incident share per
// race as paired bars. Shares are fractions and drawn in percent.
func (r *Renderer) PopulationComparison(path, title string, t disparity.Table) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Citizen Race"
	p.Y.Label.Text = "Percentage"

	names := make([]string, len(t.Rows))
	popShares := make(plotter.Values, len(t.Rows))
	uofShares := make(plotter.Values, len(t.Rows))
	for i, row := range t.Rows {
		names[i] = string(row.Race)
		popShares[i] = row.PopulationShare * 100
		uofShares[i] = row.IncidentShare * 100
	}

	width := vg.Points(18)

	popBars, err := plotter.NewBarChart(popShares, width)
	if err != nil {
		return fmt.Errorf("failed to build population bars: %w", err)
	}
	popBars.Color = rgb(0xB8, 0xB8, 0xB8)
	popBars.Offset = -width / 2

	uofBars, err := plotter.NewBarChart(uofShares, width)
	if err != nil {
		return fmt.Errorf("failed to build incident bars: %w", err)
	}
	uofBars.Color = rgb(0x4A, 0x90, 0xE2)
	uofBars.Offset = width / 2

	p.Add(popBars, uofBars)
	p.Legend.Add("Population (16+)", popBars)
	p.Legend.Add("Use of Force Incidents", uofBars)
	p.Legend.Top = true
	p.NominalX(names...)

	return r.save(p, path)
}

// ByYear renders grouped bars of incident counts per race, one series per
// year, so trends read side by side.
func (r *Renderer) ByYear(path, title string, tables []disparity.Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no yearly tables to chart")
	}

	categories := chartCategories(tables)
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Citizen Race"
	p.Y.Label.Text = "Number of Incidents"

	width := vg.Points(14)
	for i, t := range tables {
		counts := make(plotter.Values, len(categories))
		byRace := make(map[race.Category]int, len(t.Rows))
		for _, row := range t.Rows {
			byRace[row.Race] = row.Count
		}
		for j, cat := range categories {
			counts[j] = float64(byRace[cat])
		}

		bars, err := plotter.NewBarChart(counts, width)
		if err != nil {
			return fmt.Errorf("failed to build bars for %s: %w", t.Partition, err)
		}
		bars.Color = groupPalette[i%len(groupPalette)]
		bars.Offset = vg.Length(float64(i)-float64(len(tables)-1)/2) * width
		p.Add(bars)
		p.Legend.Add(fmt.Sprintf("%s (n=%d)", t.Partition, t.TotalRecords), bars)
	}

	p.Legend.Top = true
	p.NominalX(categoryNames(categories)...)

	return r.save(p, path)
}

// DisparityComparison renders disparity ratios per race for several dataset
// variants, with a dashed reference line at 1.0 (equal representation).
// Undefined ratios draw as zero-height bars; the tables themselves carry the
// N/A marker.
func (r *Renderer) DisparityComparison(path, title string, variants []string, tables map[string]disparity.Table) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Citizen Race"
	p.Y.Label.Text = "Disparity Ratio"

	categories := race.Recognized
	width := vg.Points(14)
	for i, name := range variants {
		t := tables[name]
		ratios := make(plotter.Values, len(categories))
		byRace := make(map[race.Category]float64, len(t.Rows))
		for _, row := range t.Rows {
			byRace[row.Race] = row.Ratio
		}
		for j, cat := range categories {
			if v := byRace[cat]; !disparity.Undefined(v) {
				ratios[j] = v
			}
		}

		bars, err := plotter.NewBarChart(ratios, width)
		if err != nil {
			return fmt.Errorf("failed to build bars for %s: %w", name, err)
		}
		bars.Color = groupPalette[i%len(groupPalette)]
		bars.Offset = vg.Length(float64(i)-float64(len(variants)-1)/2) * width
		p.Add(bars)
		p.Legend.Add(fmt.Sprintf("%s (n=%d)", name, t.TotalRecords), bars)
	}

	parity, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: 1},
		{X: float64(len(categories)) - 0.5, Y: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to build parity line: %w", err)
	}
	parity.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(parity)
	p.Legend.Add("Equal representation", parity)

	p.Legend.Top = true
	p.NominalX(categoryNames(categories)...)

	return r.save(p, path)
}

func colorFor(cat race.Category) color.Color {
	if c, ok := categoryColors[cat]; ok {
		return c
	}
	return fallbackColor
}

// singleBar builds a one-value bar positioned at slot i of n, so each bar in
// a nominal-X chart can carry its own color.
func singleBar(v float64, i, n int, c color.Color) (*plotter.BarChart, error) {
	values := make(plotter.Values, n)
	values[i] = v
	bar, err := plotter.NewBarChart(values, vg.Points(28))
	if err != nil {
		return nil, fmt.Errorf("failed to build bar: %w", err)
	}
	bar.Color = c
	return bar, nil
}

// chartCategories returns the union of categories across tables in canonical
// order.
func chartCategories(tables []disparity.Table) []race.Category {
	present := make(map[race.Category]bool)
	for _, t := range tables {
		for _, row := range t.Rows {
			present[row.Race] = true
		}
	}
	var cats []race.Category
	for _, cat := range race.All {
		if present[cat] {
			cats = append(cats, cat)
		}
	}
	return cats
}

func categoryNames(cats []race.Category) []string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return names
}

func (r *Renderer) save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	if err := p.Save(r.width, r.height, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}

func rgb(r, g, b uint8) color.Color {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
