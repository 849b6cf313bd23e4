// Package spdb persists space-point reconstruction runs to sqlite. Each
// run stores the config it was produced with plus one row per resolved
// space point, so results can be compared across tuning changes and fed to
// the plotting tools.
package spdb

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/detlab/spacepoint/internal/monitoring"
	"github.com/detlab/spacepoint/internal/strip"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps the sqlite handle for space-point storage.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) a space-point database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open space-point db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	monitoring.Debugf("spdb: initialised schema at %s", path)
	return &DB{db}, nil
}

// Run summarises one reconstruction invocation.
type Run struct {
	ID        string
	CreatedAt time.Time
	Config    strip.Config
	FrontHits int
	BackHits  int
	// Candidates counts matched pairs; Resolved counts those with a solved
	// position.
	Candidates int
	Resolved   int
}

// Point is one stored space point.
type Point struct {
	RunID     string
	Idx       int
	X, Y, Z   float64
	FrontSize int // hits in the front cluster (1 or 2)
	BackSize  int
}

// clusterSize counts the hits in a cluster.
func clusterSize(c strip.Cluster) int {
	if c.Secondary != nil {
		return 2
	}
	return 1
}

// InsertRun stores a run together with the resolved entries of points and
// returns the generated run id. Unresolved candidates are counted but not
// stored.
func (db *DB) InsertRun(cfg strip.Config, frontHits, backHits int, points []strip.SpacePoint) (string, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	resolved := 0
	for _, sp := range points {
		if sp.Resolved {
			resolved++
		}
	}

	runID := uuid.NewString()
	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sp_run (run_id, created_unix_nanos, config_json, front_hits, back_hits, candidates, resolved)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UnixNano(), string(cfgJSON), frontHits, backHits, len(points), resolved)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO sp_point (run_id, idx, x, y, z, front_size, back_size)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare point insert: %w", err)
	}
	defer stmt.Close()

	idx := 0
	for _, sp := range points {
		if !sp.Resolved {
			continue
		}
		if _, err := stmt.Exec(runID, idx, sp.Position.X, sp.Position.Y, sp.Position.Z,
			clusterSize(sp.Front), clusterSize(sp.Back)); err != nil {
			return "", fmt.Errorf("failed to insert point %d: %w", idx, err)
		}
		idx++
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// LatestRunID returns the id of the most recently stored run, or an error
// if the database holds none.
func (db *DB) LatestRunID() (string, error) {
	var id string
	err := db.QueryRow(`SELECT run_id FROM sp_run ORDER BY created_unix_nanos DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("no runs stored")
	}
	if err != nil {
		return "", fmt.Errorf("failed to query latest run: %w", err)
	}
	return id, nil
}

// GetRun loads one run's summary row.
func (db *DB) GetRun(runID string) (*Run, error) {
	var (
		run     Run
		nanos   int64
		cfgJSON string
	)
	err := db.QueryRow(
		`SELECT run_id, created_unix_nanos, config_json, front_hits, back_hits, candidates, resolved
		 FROM sp_run WHERE run_id = ?`, runID).
		Scan(&run.ID, &nanos, &cfgJSON, &run.FrontHits, &run.BackHits, &run.Candidates, &run.Resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	run.CreatedAt = time.Unix(0, nanos)
	if err := json.Unmarshal([]byte(cfgJSON), &run.Config); err != nil {
		return nil, fmt.Errorf("failed to decode config for run %s: %w", runID, err)
	}
	return &run, nil
}

// ListPoints returns a run's stored points ordered by index.
func (db *DB) ListPoints(runID string) ([]Point, error) {
	rows, err := db.Query(
		`SELECT run_id, idx, x, y, z, front_size, back_size
		 FROM sp_point WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query points: %w", err)
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.RunID, &p.Idx, &p.X, &p.Y, &p.Z, &p.FrontSize, &p.BackSize); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
