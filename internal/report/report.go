// Package report renders a self-contained HTML report for a run with
// go-echarts: an uplift map, a radial profile chart and a metric
// summary on one page.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/volckit/mogisim/internal/analysis"
	"github.com/volckit/mogisim/internal/geo"
)

// maxMapPoints caps the scatter payload so large grids stay renderable
// in a browser.
const maxMapPoints = 8000

var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// Info carries the run summary shown in chart titles and the metric
// bar chart.
type Info struct {
	Name    string
	Nu      float64
	Points  int
	Sources int
	Elapsed time.Duration
	Stats   map[string]float64
}

func (i Info) subtitle() string {
	return fmt.Sprintf("nu=%.3g sources=%d points=%d elapsed=%s", i.Nu, i.Sources, i.Points, i.Elapsed.Round(time.Microsecond))
}

// Write renders the report page to w.
func Write(w io.Writer, info Info, grid geo.Grid, field geo.Field, set geo.SourceSet, prof analysis.Profile) error {
	page := components.NewPage()
	page.PageTitle = info.Name

	page.AddCharts(
		fieldChart(info, grid, field, set),
		profileChart(info, prof),
		statsChart(info),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// WriteFile renders the report page to a file.
func WriteFile(path string, info Info, grid geo.Grid, field geo.Field, set geo.SourceSet, prof analysis.Profile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	return Write(f, info, grid, field, set, prof)
}

// fieldChart draws the observation grid as a scatter colored by
// vertical displacement, with the sources overlaid.
func fieldChart(info Info, grid geo.Grid, field geo.Field, set geo.SourceSet) *charts.Scatter {
	stride := 1
	if grid.Len() > maxMapPoints {
		stride = int(math.Ceil(float64(grid.Len()) / float64(maxMapPoints)))
	}

	data := make([]opts.ScatterData, 0, grid.Len()/stride+1)
	minUz, maxUz := math.Inf(1), math.Inf(-1)
	for i := 0; i < grid.Len(); i += stride {
		uz := field.Uz[i]
		if math.IsNaN(uz) || math.IsInf(uz, 0) {
			continue
		}
		if uz < minUz {
			minUz = uz
		}
		if uz > maxUz {
			maxUz = uz
		}
		data = append(data, opts.ScatterData{Value: []interface{}{grid.X[i], grid.Y[i], uz}})
	}
	if minUz > maxUz {
		minUz, maxUz = 0, 1
	}

	srcData := make([]opts.ScatterData, 0, set.Len())
	for _, src := range set.Sources {
		srcData = append(srcData, opts.ScatterData{Value: []interface{}{src.X, src.Y, 0.0}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: info.Name, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Vertical Displacement", Subtitle: info.subtitle()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(minUz),
			Max:        float32(maxUz),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)

	scatter.AddSeries("uz", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	scatter.AddSeries("sources", srcData,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 14, Symbol: "diamond"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}),
	)
	return scatter
}

// profileChart draws binned radial displacement against distance from
// the deformation center.
func profileChart(info Info, prof analysis.Profile) *charts.Line {
	xs := make([]string, len(prof.Dist))
	uzData := make([]opts.LineData, len(prof.Dist))
	urData := make([]opts.LineData, len(prof.Dist))
	for i, d := range prof.Dist {
		xs[i] = fmt.Sprintf("%.0f", d)
		uzData[i] = opts.LineData{Value: prof.Uz[i]}
		urData[i] = opts.LineData{Value: prof.Ur[i]}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Radial Profile", Subtitle: "binned mean displacement vs distance"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "distance (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "displacement (m)"}),
	)
	line.SetXAxis(xs).
		AddSeries("uz", uzData).
		AddSeries("ur", urData)
	return line
}

// statsChart draws the metric snapshot as a bar chart.
func statsChart(info Info) *charts.Bar {
	names := make([]string, 0, len(info.Stats))
	for name := range info.Stats {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]opts.BarData, len(names))
	for i, name := range names {
		values[i] = opts.BarData{Value: info.Stats[name]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Field Metrics", Subtitle: info.Name}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("metrics", values,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}
