// Package store persists computed runs. Each run gets a directory under
// <data>/runs/<id>/ holding the displacement field as CSV and the scenario
// that produced it as YAML, and a row in a SQLite catalog at
// <data>/mogisim.db for listing and lookup.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/volckit/mogisim/internal/engine"
	"github.com/volckit/mogisim/internal/export"
	"github.com/volckit/mogisim/internal/geo"
	"github.com/volckit/mogisim/internal/scenario"
)

const (
	runsDir      = "runs"
	catalogFile  = "mogisim.db"
	fieldFile    = "field.csv"
	scenarioFile = "scenario.yaml"
)

// Store catalogs runs in SQLite and keeps their artifacts on disk.
type Store struct {
	db      *sqlx.DB
	baseDir string
	log     *zap.Logger
}

// RunMeta is a catalog row describing one stored run.
type RunMeta struct {
	ID        string  `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	CreatedAt int64   `db:"created_at" json:"created_at"`
	Nu        float64 `db:"nu" json:"nu"`
	Sources   int     `db:"sources" json:"sources"`
	Points    int     `db:"points" json:"points"`
	ElapsedMS int64   `db:"elapsed_ms" json:"elapsed_ms"`
	StatsJSON string  `db:"stats_json" json:"-"`
}

// Created converts the nanosecond timestamp back to wall-clock time.
func (m RunMeta) Created() time.Time {
	return time.Unix(0, m.CreatedAt)
}

// Stats decodes the metric snapshot stored with the run. A missing or
// malformed snapshot yields an empty map.
func (m RunMeta) Stats() map[string]float64 {
	stats := make(map[string]float64)
	if m.StatsJSON != "" {
		_ = json.Unmarshal([]byte(m.StatsJSON), &stats)
	}
	return stats
}

// Open creates the data directory if needed, opens the SQLite catalog and
// applies the schema. A nil logger disables logging.
func Open(dataDir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Join(dataDir, runsDir), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dsn := filepath.Join(dataDir, catalogFile) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	s := &Store{db: db, baseDir: dataDir, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	return s, nil
}

// Close releases the catalog handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		nu         REAL NOT NULL,
		sources    INTEGER NOT NULL,
		points     INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		stats_json TEXT NOT NULL DEFAULT '{}'
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun writes the run artifacts and inserts the catalog row. It returns
// the generated run ID. The catalog row is written last so every cataloged
// run has its artifacts on disk.
func (s *Store) SaveRun(sc *scenario.Scenario, res *engine.Result) (string, error) {
	id := uuid.NewString()
	dir := s.runDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	if err := s.writeField(filepath.Join(dir, fieldFile), res.Grid, res.Field); err != nil {
		return "", err
	}
	if err := scenario.Save(filepath.Join(dir, scenarioFile), sc); err != nil {
		return "", fmt.Errorf("write scenario: %w", err)
	}

	statsJSON, _ := json.Marshal(res.Stats)
	meta := RunMeta{
		ID:        id,
		Name:      sc.Name,
		CreatedAt: time.Now().UnixNano(),
		Nu:        sc.BuildNu(),
		Sources:   res.Sources,
		Points:    res.Points,
		ElapsedMS: res.Elapsed.Milliseconds(),
		StatsJSON: string(statsJSON),
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, name, created_at, nu, sources, points, elapsed_ms, stats_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Name, meta.CreatedAt, meta.Nu, meta.Sources, meta.Points, meta.ElapsedMS, meta.StatsJSON,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}

	s.log.Debug("run saved",
		zap.String("id", id),
		zap.String("name", sc.Name),
		zap.Int("points", res.Points),
	)
	return id, nil
}

func (s *Store) writeField(path string, grid geo.Grid, field geo.Field) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create field file: %w", err)
	}
	defer f.Close()
	if err := export.WriteCSV(f, grid, field); err != nil {
		return fmt.Errorf("write field: %w", err)
	}
	return nil
}

// List returns catalog rows newest first.
func (s *Store) List() ([]RunMeta, error) {
	var runs []RunMeta
	err := s.db.Select(&runs,
		`SELECT id, name, created_at, nu, sources, points, elapsed_ms, stats_json
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get returns the catalog row for one run.
func (s *Store) Get(id string) (RunMeta, error) {
	var meta RunMeta
	err := s.db.Get(&meta,
		`SELECT id, name, created_at, nu, sources, points, elapsed_ms, stats_json
		 FROM runs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return RunMeta{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return RunMeta{}, fmt.Errorf("get run: %w", err)
	}
	return meta, nil
}

// LoadField reads a stored displacement field back from its CSV artifact.
func (s *Store) LoadField(id string) (geo.Grid, geo.Field, error) {
	if _, err := s.Get(id); err != nil {
		return geo.Grid{}, geo.Field{}, err
	}
	f, err := os.Open(filepath.Join(s.runDir(id), fieldFile))
	if err != nil {
		return geo.Grid{}, geo.Field{}, fmt.Errorf("open field file: %w", err)
	}
	defer f.Close()
	grid, field, err := export.ReadCSV(f)
	if err != nil {
		return geo.Grid{}, geo.Field{}, fmt.Errorf("read field: %w", err)
	}
	return grid, field, nil
}

// LoadScenario reads the scenario that produced a stored run.
func (s *Store) LoadScenario(id string) (*scenario.Scenario, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	sc, err := scenario.Load(filepath.Join(s.runDir(id), scenarioFile))
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return sc, nil
}

// Delete removes the catalog row and the run directory.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := os.RemoveAll(s.runDir(id)); err != nil {
		return fmt.Errorf("remove run dir: %w", err)
	}
	s.log.Debug("run deleted", zap.String("id", id))
	return nil
}

func (s *Store) runDir(id string) string {
	return filepath.Join(s.baseDir, runsDir, id)
}
