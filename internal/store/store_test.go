package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volckit/mogisim/internal/engine"
	"github.com/volckit/mogisim/internal/metrics"
	"github.com/volckit/mogisim/internal/scenario"
)

func testScenario() *scenario.Scenario {
	sc := scenario.Default()
	sc.Name = "store-test"
	sc.Grid.Nx = 9
	sc.Grid.Ny = 7
	return sc
}

func computeRun(t *testing.T, sc *scenario.Scenario) *engine.Result {
	t.Helper()
	grid, set, err := sc.Build()
	require.NoError(t, err)
	eng := engine.New(engine.Config{Nu: sc.BuildNu()}, nil)
	for _, m := range metrics.Default() {
		eng.AddMetric(m)
	}
	res, err := eng.Run(context.Background(), grid, set)
	require.NoError(t, err)
	return res
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveRunCreatesArtifacts(t *testing.T) {
	s := openStore(t)
	sc := testScenario()
	res := computeRun(t, sc)

	id, err := s.SaveRun(sc, res)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	dir := filepath.Join(s.baseDir, runsDir, id)
	for _, name := range []string{fieldFile, scenarioFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "missing artifact %s", name)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestGetReturnsMeta(t *testing.T) {
	s := openStore(t)
	sc := testScenario()
	res := computeRun(t, sc)

	id, err := s.SaveRun(sc, res)
	require.NoError(t, err)

	meta, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, meta.ID)
	assert.Equal(t, "store-test", meta.Name)
	assert.Equal(t, res.Points, meta.Points)
	assert.Equal(t, res.Sources, meta.Sources)
	assert.InDelta(t, sc.BuildNu(), meta.Nu, 1e-12)
	assert.WithinDuration(t, time.Now(), meta.Created(), time.Minute)

	stats := meta.Stats()
	require.NotEmpty(t, stats)
	for name, want := range res.Stats {
		assert.InDelta(t, want, stats[name], 1e-12, "stat %s", name)
	}
}

func TestGetNotFound(t *testing.T) {
	s := openStore(t)
	_, err := s.Get("no-such-run")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := openStore(t)
	sc := testScenario()
	res := computeRun(t, sc)

	first, err := s.SaveRun(sc, res)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := s.SaveRun(sc, res)
	require.NoError(t, err)

	runs, err := s.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
}

func TestLoadFieldRoundTrip(t *testing.T) {
	s := openStore(t)
	sc := testScenario()
	res := computeRun(t, sc)

	id, err := s.SaveRun(sc, res)
	require.NoError(t, err)

	grid, field, err := s.LoadField(id)
	require.NoError(t, err)
	require.Equal(t, res.Points, grid.Len())
	for i := 0; i < grid.Len(); i++ {
		assert.Equal(t, res.Grid.X[i], grid.X[i])
		assert.Equal(t, res.Field.Uz[i], field.Uz[i])
	}
}

func TestLoadScenarioRoundTrip(t *testing.T) {
	s := openStore(t)
	sc := testScenario()
	res := computeRun(t, sc)

	id, err := s.SaveRun(sc, res)
	require.NoError(t, err)

	got, err := s.LoadScenario(id)
	require.NoError(t, err)
	assert.Equal(t, sc.Name, got.Name)
	assert.Equal(t, sc.Grid, got.Grid)
	require.Len(t, got.Sources, len(sc.Sources))
	assert.Equal(t, sc.Sources[0], got.Sources[0])
}

func TestDeleteRemovesRowAndDir(t *testing.T) {
	s := openStore(t)
	sc := testScenario()
	res := computeRun(t, sc)

	id, err := s.SaveRun(sc, res)
	require.NoError(t, err)
	dir := filepath.Join(s.baseDir, runsDir, id)

	require.NoError(t, s.Delete(id))

	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, s.Delete(id), ErrNotFound)
}

func TestOpenReusesCatalog(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	require.NoError(t, err)
	sc := testScenario()
	res := computeRun(t, sc)
	id, err := s.SaveRun(sc, res)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	meta, err := reopened.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, meta.ID)
}
