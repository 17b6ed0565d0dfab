package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/volckit/mogisim/internal/geo"
)

func TestDefault(t *testing.T) {
	s := Default()

	if s.Nu != 0.25 {
		t.Errorf("expected nu 0.25, got %f", s.Nu)
	}
	if len(s.Sources) != 1 {
		t.Fatalf("expected one source, got %d", len(s.Sources))
	}
	if s.Sources[0].Z >= 0 {
		t.Error("default source should be buried")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default scenario should validate: %v", err)
	}
}

func TestBuild(t *testing.T) {
	s := Default()

	grid, set, err := s.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if grid.Len() != s.Grid.Nx*s.Grid.Ny {
		t.Errorf("expected %d points, got %d", s.Grid.Nx*s.Grid.Ny, grid.Len())
	}
	if set.Len() != 1 {
		t.Errorf("expected 1 source, got %d", set.Len())
	}
	if err := set.Validate(); err != nil {
		t.Errorf("built set should validate: %v", err)
	}
}

func TestValidateEmptyGrid(t *testing.T) {
	s := Default()
	s.Grid.Nx = 0

	if err := s.Validate(); !errors.Is(err, geo.ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
}

func TestValidateBadExtent(t *testing.T) {
	s := Default()
	s.Grid.X1 = s.Grid.X0

	if err := s.Validate(); err == nil {
		t.Error("expected error for degenerate x extent")
	}
}

func TestBuildNuDefault(t *testing.T) {
	s := Default()
	s.Nu = 0

	if nu := s.BuildNu(); nu != 0.25 {
		t.Errorf("expected fallback nu 0.25, got %f", nu)
	}

	s.Nu = 0.3
	if nu := s.BuildNu(); nu != 0.3 {
		t.Errorf("expected nu 0.3, got %f", nu)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "twin.yaml")

	s := GetPreset("twin")
	s.Seed = 42

	if err := Save(path, s); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Name != "twin" || len(loaded.Sources) != 2 || loaded.Seed != 42 {
		t.Errorf("round trip lost data: %+v", loaded)
	}
	if loaded.Sources[1].Strength != 6 {
		t.Errorf("expected strength 6, got %f", loaded.Sources[1].Strength)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")

	content := "name: partial\nsources:\n  - {x: 100, y: 0, z: -500, strength: 2}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if s.Grid.Nx != DefaultNx {
		t.Errorf("expected default nx %d, got %d", DefaultNx, s.Grid.Nx)
	}
	if s.Sources[0].Strength != 2 {
		t.Errorf("expected overridden source, got %+v", s.Sources)
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("deflation")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.Sources[0].Strength >= 0 {
		t.Error("deflation preset should have negative strength")
	}

	// Mutating the copy must not leak into the table.
	p.Sources[0].Strength = 99
	if Presets["deflation"].Sources[0].Strength == 99 {
		t.Error("preset table was mutated through the copy")
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) < 5 {
		t.Errorf("expected at least 5 presets, got %d", len(names))
	}

	found := false
	for _, n := range names {
		if n == "chamber" {
			found = true
		}
	}
	if !found {
		t.Error("expected chamber preset in listing")
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("MOGISIM_DATA", "/tmp/mogidata")
	t.Setenv("MOGISIM_VERBOSE", "true")

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("parse env failed: %v", err)
	}

	if cfg.DataDir != "/tmp/mogidata" {
		t.Errorf("expected /tmp/mogidata, got %s", cfg.DataDir)
	}
	if !cfg.Verbose {
		t.Error("expected verbose true")
	}
}

func TestParseEnvDefaults(t *testing.T) {
	// t.Setenv registers the restore; the test needs the var absent.
	t.Setenv("MOGISIM_DATA", "placeholder")
	os.Unsetenv("MOGISIM_DATA")

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("parse env failed: %v", err)
	}

	if cfg.DataDir != ".mogisim" {
		t.Errorf("expected default data dir, got %s", cfg.DataDir)
	}
}
