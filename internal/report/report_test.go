package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volckit/mogisim/internal/analysis"
	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/mogi"
)

func reportInputs(t *testing.T) (Info, geo.Grid, geo.Field, geo.SourceSet, analysis.Profile) {
	t.Helper()
	grid := geo.NewPlane(-5000, 5000, 21, -5000, 5000, 21, 0)
	var set geo.SourceSet
	set.Add(geo.Source{X: 0, Y: 0, Z: -1000}, 10)
	field, err := mogi.Compute(grid, set, mogi.DefaultNu)
	require.NoError(t, err)

	prof := analysis.RadialProfile(grid, field, 0, 0, 24)
	info := Info{
		Name:    "chamber",
		Nu:      mogi.DefaultNu,
		Points:  grid.Len(),
		Sources: set.Len(),
		Elapsed: 3 * time.Millisecond,
		Stats:   map[string]float64{"peak_uplift": field.MaxAbsUz(), "rms": 0.1},
	}
	return info, grid, field, set, prof
}

func TestWriteRendersPage(t *testing.T) {
	info, grid, field, set, prof := reportInputs(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, info, grid, field, set, prof))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Vertical Displacement")
	assert.Contains(t, html, "Radial Profile")
	assert.Contains(t, html, "Field Metrics")
	assert.Contains(t, html, "peak_uplift")
}

func TestWriteFileCreatesReport(t *testing.T) {
	info, grid, field, set, prof := reportInputs(t)
	path := filepath.Join(t.TempDir(), "run.html")

	require.NoError(t, WriteFile(path, info, grid, field, set, prof))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestWriteSkipsSingularSamples(t *testing.T) {
	info, grid, field, set, prof := reportInputs(t)
	field.Uz[0] = math.NaN()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, info, grid, field, set, prof))
	assert.NotZero(t, buf.Len())
}

func TestWriteEmptyProfile(t *testing.T) {
	info, grid, field, set, _ := reportInputs(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, info, grid, field, set, analysis.Profile{}))
	assert.NotZero(t, buf.Len())
}
