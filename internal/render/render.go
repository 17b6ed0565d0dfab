// Package render draws displacement fields with gonum/plot: component
// heatmaps with source markers, radial profile charts and horizontal
// displacement quiver maps. The output format follows the file
// extension (png, pdf, svg).
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/volckit/mogisim/internal/analysis"
	"github.com/volckit/mogisim/internal/geo"
)

// ErrNotPlane is returned when a map rendering needs a regular plane
// grid but the samples are a profile or scattered points.
var ErrNotPlane = errors.New("render: grid is not a regular plane")

var (
	uzColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	urColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// componentValues resolves a component name to its per-sample values
// and an axis label.
func componentValues(f geo.Field, component string) ([]float64, string, error) {
	switch component {
	case "ux":
		return f.Ux, "ux (m)", nil
	case "uy":
		return f.Uy, "uy (m)", nil
	case "", "uz":
		return f.Uz, "uz (m)", nil
	case "mag":
		vals := make([]float64, f.Len())
		for i := range vals {
			vals[i] = f.MagnitudeAt(i)
		}
		return vals, "|u| (m)", nil
	default:
		return nil, "", fmt.Errorf("render: unknown component %q", component)
	}
}

// fieldGrid adapts one field component on a plane grid to the
// plotter.GridXYZ interface. Values are stored row-major with y as the
// row axis.
type fieldGrid struct {
	xs, ys []float64
	vals   []float64
	nx     int
}

func newFieldGrid(grid geo.Grid, vals []float64) (*fieldGrid, error) {
	nx, ny, ok := grid.Dims()
	if !ok {
		return nil, ErrNotPlane
	}
	xs := make([]float64, nx)
	for c := 0; c < nx; c++ {
		xs[c] = grid.X[c]
	}
	ys := make([]float64, ny)
	for r := 0; r < ny; r++ {
		ys[r] = grid.Y[r*nx]
	}
	return &fieldGrid{xs: xs, ys: ys, vals: vals, nx: nx}, nil
}

func (g *fieldGrid) Dims() (c, r int)   { return len(g.xs), len(g.ys) }
func (g *fieldGrid) X(c int) float64    { return g.xs[c] }
func (g *fieldGrid) Y(r int) float64    { return g.ys[r] }
func (g *fieldGrid) Z(c, r int) float64 { return g.vals[r*g.nx+c] }

// Heatmap renders one field component over a plane grid with the
// source positions marked. Samples must be finite; check
// Field.IsFinite before rendering grids that touch a source.
func Heatmap(path string, grid geo.Grid, f geo.Field, component string, set geo.SourceSet, title string) error {
	vals, label, err := componentValues(f, component)
	if err != nil {
		return err
	}
	fg, err := newFieldGrid(grid, vals)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	if title == "" {
		p.Title.Text = label
	}
	p.X.Label.Text = "easting (m)"
	p.Y.Label.Text = "northing (m)"

	hm := plotter.NewHeatMap(fg, palette.Heat(256, 255))
	p.Add(hm)

	if set.Len() > 0 {
		scatter, err := sourceMarkers(set)
		if err != nil {
			return err
		}
		p.Add(scatter)
		p.Legend.Add("source", scatter)
		p.Legend.Top = true
	}

	if err := p.Save(8*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}

func sourceMarkers(set geo.SourceSet) (*plotter.Scatter, error) {
	pts := make(plotter.XYs, set.Len())
	for i, src := range set.Sources {
		pts[i] = plotter.XY{X: src.X, Y: src.Y}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("source markers: %w", err)
	}
	scatter.GlyphStyle.Color = color.Black
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.RingGlyph{}
	return scatter, nil
}

// Profile renders vertical and radial displacement against distance
// from the profile center.
func Profile(path string, prof analysis.Profile, title string) error {
	p := plot.New()
	p.Title.Text = title
	if title == "" {
		p.Title.Text = "radial profile"
	}
	p.X.Label.Text = "distance (m)"
	p.Y.Label.Text = "displacement (m)"

	uzPts := make(plotter.XYs, len(prof.Dist))
	urPts := make(plotter.XYs, len(prof.Dist))
	for i, d := range prof.Dist {
		uzPts[i] = plotter.XY{X: d, Y: prof.Uz[i]}
		urPts[i] = plotter.XY{X: d, Y: prof.Ur[i]}
	}

	uzLine, err := plotter.NewLine(uzPts)
	if err != nil {
		return fmt.Errorf("uz line: %w", err)
	}
	uzLine.Color = uzColor
	uzLine.Width = vg.Points(1)
	p.Add(uzLine)
	p.Legend.Add("uz", uzLine)

	urLine, err := plotter.NewLine(urPts)
	if err != nil {
		return fmt.Errorf("ur line: %w", err)
	}
	urLine.Color = urColor
	urLine.Width = vg.Points(1)
	p.Add(urLine)
	p.Legend.Add("ur", urLine)

	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Quiver renders the horizontal displacement as arrows on a plane
// grid, downsampled by stride. A stride below 1 picks one that keeps
// roughly 24 arrows per axis. Arrows are scaled so the largest spans
// one strided cell.
func Quiver(path string, grid geo.Grid, f geo.Field, stride int, set geo.SourceSet, title string) error {
	nx, ny, ok := grid.Dims()
	if !ok {
		return ErrNotPlane
	}
	if stride < 1 {
		stride = max(nx, ny) / 24
		if stride < 1 {
			stride = 1
		}
	}

	p := plot.New()
	p.Title.Text = title
	if title == "" {
		p.Title.Text = "horizontal displacement"
	}
	p.X.Label.Text = "easting (m)"
	p.Y.Label.Text = "northing (m)"

	maxH := 0.0
	for i := 0; i < f.Len(); i++ {
		if h := f.Horizontal(i); !math.IsNaN(h) && !math.IsInf(h, 0) && h > maxH {
			maxH = h
		}
	}

	scale := 0.0
	if maxH > 0 && nx > 1 {
		cell := (grid.X[nx-1] - grid.X[0]) / float64(nx-1)
		scale = 0.9 * float64(stride) * cell / maxH
	}

	for r := 0; r < ny; r += stride {
		for c := 0; c < nx; c += stride {
			i := r*nx + c
			ux, uy := f.Ux[i], f.Uy[i]
			if math.IsNaN(ux) || math.IsNaN(uy) || math.IsInf(ux, 0) || math.IsInf(uy, 0) {
				continue
			}
			seg := plotter.XYs{
				{X: grid.X[i], Y: grid.Y[i]},
				{X: grid.X[i] + scale*ux, Y: grid.Y[i] + scale*uy},
			}
			line, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("arrow: %w", err)
			}
			line.Color = uzColor
			line.Width = vg.Points(1)
			p.Add(line)
		}
	}

	if set.Len() > 0 {
		scatter, err := sourceMarkers(set)
		if err != nil {
			return err
		}
		p.Add(scatter)
	}

	if err := p.Save(8*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("save quiver: %w", err)
	}
	return nil
}
