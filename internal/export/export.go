// Package export serializes grids and displacement fields: CSV for the
// run store, JSON for downstream tooling, and x-y-value rows for
// mapping pipelines.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/volckit/mogisim/internal/geo"
)

var csvHeader = []string{"x", "y", "z", "ux", "uy", "uz"}

// WriteCSV writes one row per observation point. Values use the
// shortest exact representation so a read round-trips bit for bit.
func WriteCSV(w io.Writer, grid geo.Grid, f geo.Field) error {
	if grid.Len() != f.Len() {
		return fmt.Errorf("%w: %d points, %d samples", geo.ErrShapeMismatch, grid.Len(), f.Len())
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, 6)
	for i := 0; i < grid.Len(); i++ {
		row[0] = formatFloat(grid.X[i])
		row[1] = formatFloat(grid.Y[i])
		row[2] = formatFloat(grid.Z[i])
		row[3] = formatFloat(f.Ux[i])
		row[4] = formatFloat(f.Uy[i])
		row[5] = formatFloat(f.Uz[i])
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the WriteCSV format. The plane shape is not stored in
// the file, so the returned grid is a flat point set.
func ReadCSV(r io.Reader) (geo.Grid, geo.Field, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return geo.Grid{}, geo.Field{}, err
	}
	if len(records) == 0 {
		return geo.Grid{}, geo.Field{}, fmt.Errorf("export: empty csv")
	}
	if len(records[0]) != 6 || records[0][0] != "x" {
		return geo.Grid{}, geo.Field{}, fmt.Errorf("export: unexpected header %v", records[0])
	}

	n := len(records) - 1
	grid := geo.Grid{
		X:     make([]float64, n),
		Y:     make([]float64, n),
		Z:     make([]float64, n),
		Shape: []int{n},
	}
	field := geo.NewField(n, []int{n})

	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) != 6 {
			return geo.Grid{}, geo.Field{}, fmt.Errorf("export: row %d has %d columns", i, len(rec))
		}

		vals := make([]float64, 6)
		for j, s := range rec {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return geo.Grid{}, geo.Field{}, fmt.Errorf("export: row %d: %w", i, err)
			}
			vals[j] = v
		}

		k := i - 1
		grid.X[k], grid.Y[k], grid.Z[k] = vals[0], vals[1], vals[2]
		field.Ux[k], field.Uy[k], field.Uz[k] = vals[3], vals[4], vals[5]
	}

	return grid, field, nil
}

// Data is the JSON export document.
type Data struct {
	Name   string             `json:"name"`
	Nu     float64            `json:"nu"`
	Points int                `json:"points"`
	Stats  map[string]float64 `json:"stats,omitempty"`
	X      []float64          `json:"x"`
	Y      []float64          `json:"y"`
	Z      []float64          `json:"z"`
	Ux     []float64          `json:"ux"`
	Uy     []float64          `json:"uy"`
	Uz     []float64          `json:"uz"`
}

// WriteJSON writes an indented JSON document. Fields containing
// non-finite samples cannot be encoded; check Field.IsFinite first.
func WriteJSON(w io.Writer, name string, nu float64, stats map[string]float64, grid geo.Grid, f geo.Field) error {
	data := Data{
		Name:   name,
		Nu:     nu,
		Points: grid.Len(),
		Stats:  stats,
		X:      grid.X,
		Y:      grid.Y,
		Z:      grid.Z,
		Ux:     f.Ux,
		Uy:     f.Uy,
		Uz:     f.Uz,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteXYZ writes "x y value" rows for one component: ux, uy, uz or
// mag.
func WriteXYZ(w io.Writer, grid geo.Grid, f geo.Field, component string) error {
	if grid.Len() != f.Len() {
		return fmt.Errorf("%w: %d points, %d samples", geo.ErrShapeMismatch, grid.Len(), f.Len())
	}

	value, err := componentFunc(f, component)
	if err != nil {
		return err
	}

	for i := 0; i < grid.Len(); i++ {
		if _, err := fmt.Fprintf(w, "%g %g %g\n", grid.X[i], grid.Y[i], value(i)); err != nil {
			return err
		}
	}
	return nil
}

func componentFunc(f geo.Field, component string) (func(int) float64, error) {
	switch component {
	case "ux":
		return func(i int) float64 { return f.Ux[i] }, nil
	case "uy":
		return func(i int) float64 { return f.Uy[i] }, nil
	case "uz":
		return func(i int) float64 { return f.Uz[i] }, nil
	case "mag":
		return f.MagnitudeAt, nil
	default:
		return nil, fmt.Errorf("export: unknown component %q", component)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
