// Package store persists simulation runs and cumulative pattern statistics
// to SQLite. A run is the grid at generation 0 plus everything discovered
// before the save; pattern_stats aggregates discoveries across runs.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Store wraps the SQLite database holding runs and pattern statistics.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
	logger *zap.Logger
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	ID              int64
	Name            string
	CreatedAt       time.Time
	FinalGeneration int
	SpeedMS         int
	PatternCount    int
}

// RunPattern is one discovery attached to a saved run.
type RunPattern struct {
	Name       string
	Generation int
}

// Run is a fully loaded run, including the starting grid.
type Run struct {
	RunSummary
	StartingGrid [][]int
	Patterns     []RunPattern
}

// PatternStat is the cumulative record for one pattern name.
type PatternStat struct {
	Name            string
	TimesDiscovered int
	FirstSeenAt     time.Time
	LastSeenAt      time.Time
	RunsAppearedIn  int
}

// Open initializes the database at path, creating parent directories and
// the schema as needed. Pass a nil logger for silent operation.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			logger.Debug("pragma failed", zap.String("pragma", pragma), zap.Error(err))
		}
	}

	s := &Store{db: db, dbPath: path, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Debug("store opened", zap.String("path", path))
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		starting_grid TEXT NOT NULL,
		final_generation INTEGER NOT NULL,
		speed_ms INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_patterns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		pattern_name TEXT NOT NULL,
		generation_discovered INTEGER NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
		UNIQUE(run_id, pattern_name)
	);

	CREATE TABLE IF NOT EXISTS pattern_stats (
		pattern_name TEXT PRIMARY KEY,
		times_discovered INTEGER NOT NULL DEFAULT 0,
		first_seen_at TEXT NOT NULL,
		last_seen_at TEXT NOT NULL,
		runs_appeared_in INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun stores a run with its discovery map and updates cumulative
// pattern statistics in one transaction. Returns the new run id.
func (s *Store) SaveRun(name string, startingGrid [][]int, discovered map[string]int, finalGeneration, speedMS int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gridJSON, err := json.Marshal(startingGrid)
	if err != nil {
		return 0, fmt.Errorf("failed to encode starting grid: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (name, created_at, starting_grid, final_generation, speed_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		name, now, string(gridJSON), finalGeneration, speedMS,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for patternName, gen := range discovered {
		if _, err := tx.Exec(
			`INSERT INTO run_patterns (run_id, pattern_name, generation_discovered)
			 VALUES (?, ?, ?)`,
			runID, patternName, gen,
		); err != nil {
			return 0, fmt.Errorf("failed to insert run pattern %q: %w", patternName, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO pattern_stats (pattern_name, times_discovered, first_seen_at, last_seen_at, runs_appeared_in)
			 VALUES (?, 1, ?, ?, 1)
			 ON CONFLICT(pattern_name) DO UPDATE SET
			     times_discovered = times_discovered + 1,
			     last_seen_at = excluded.last_seen_at,
			     runs_appeared_in = runs_appeared_in + 1`,
			patternName, now, now,
		); err != nil {
			return 0, fmt.Errorf("failed to upsert pattern stats for %q: %w", patternName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	s.logger.Debug("run saved",
		zap.Int64("run_id", runID),
		zap.String("name", name),
		zap.Int("patterns", len(discovered)))
	return runID, nil
}

// ListRuns returns all runs with their pattern counts, newest first.
func (s *Store) ListRuns() ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT r.run_id, r.name, r.created_at, r.final_generation, r.speed_ms,
		        COUNT(rp.id) AS pattern_count
		 FROM runs r
		 LEFT JOIN run_patterns rp ON r.run_id = rp.run_id
		 GROUP BY r.run_id
		 ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		var createdAt string
		if err := rows.Scan(&rs.ID, &rs.Name, &createdAt, &rs.FinalGeneration, &rs.SpeedMS, &rs.PatternCount); err != nil {
			return nil, err
		}
		rs.CreatedAt = parseTime(createdAt)
		out = append(out, rs)
	}
	return out, rows.Err()
}

// LoadRun returns the full run, or (nil, nil) when no such run exists.
func (s *Store) LoadRun(runID int64) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var run Run
	var createdAt, gridJSON string
	err := s.db.QueryRow(
		`SELECT run_id, name, created_at, starting_grid, final_generation, speed_ms
		 FROM runs WHERE run_id = ?`, runID,
	).Scan(&run.ID, &run.Name, &createdAt, &gridJSON, &run.FinalGeneration, &run.SpeedMS)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", runID, err)
	}
	run.CreatedAt = parseTime(createdAt)
	if err := json.Unmarshal([]byte(gridJSON), &run.StartingGrid); err != nil {
		return nil, fmt.Errorf("failed to decode starting grid for run %d: %w", runID, err)
	}

	rows, err := s.db.Query(
		`SELECT pattern_name, generation_discovered FROM run_patterns
		 WHERE run_id = ? ORDER BY generation_discovered`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rp RunPattern
		if err := rows.Scan(&rp.Name, &rp.Generation); err != nil {
			return nil, err
		}
		run.Patterns = append(run.Patterns, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Count after the fact so the summary matches the loaded list.
	run.PatternCount = len(run.Patterns)
	return &run, nil
}

// DeleteRun removes a run; its run_patterns cascade.
func (s *Store) DeleteRun(runID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run %d: %w", runID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %d not found", runID)
	}
	return nil
}

// PatternStats returns cumulative pattern statistics, most frequently
// discovered first.
func (s *Store) PatternStats() ([]PatternStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT pattern_name, times_discovered, first_seen_at, last_seen_at, runs_appeared_in
		 FROM pattern_stats ORDER BY times_discovered DESC, pattern_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pattern stats: %w", err)
	}
	defer rows.Close()

	var out []PatternStat
	for rows.Next() {
		var ps PatternStat
		var first, last string
		if err := rows.Scan(&ps.Name, &ps.TimesDiscovered, &first, &last, &ps.RunsAppearedIn); err != nil {
			return nil, err
		}
		ps.FirstSeenAt = parseTime(first)
		ps.LastSeenAt = parseTime(last)
		out = append(out, ps)
	}
	return out, rows.Err()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.dbPath }

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
