// Package store records pipeline run provenance in a local SQLite database:
// which stage ran, what it read and wrote, and how many rows were produced,
// skipped or dropped.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store manages the run manifest database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Run is one recorded pipeline stage execution.
type Run struct {
	ID        string
	Stage     string
	Input     string
	Output    string
	Rows      int
	Skipped   int // malformed input rows skipped
	Dropped   int // rows removed by a filter
	StartedAt time.Time
	Duration  time.Duration
}

// Open creates or opens the run manifest store.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		stage TEXT NOT NULL,
		input TEXT,
		output TEXT,
		rows INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		dropped INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_stage ON runs(stage);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Record inserts a run row. The returned Run carries the generated ID.
func (s *Store) Record(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (id, stage, input, output, rows, skipped, dropped, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Stage, run.Input, run.Output,
		run.Rows, run.Skipped, run.Dropped,
		run.StartedAt, run.Duration.Milliseconds())
	if err != nil {
		return Run{}, fmt.Errorf("failed to record run: %w", err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, stage, input, output, rows, skipped, dropped, started_at, duration_ms
		FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.Stage, &r.Input, &r.Output,
			&r.Rows, &r.Skipped, &r.Dropped, &r.StartedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LatestByStage returns the most recent run of each stage.
func (s *Store) LatestByStage() (map[string]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, stage, input, output, rows, skipped, dropped, started_at, duration_ms
		FROM runs r1
		WHERE started_at = (SELECT MAX(started_at) FROM runs r2 WHERE r2.stage = r1.stage)`)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest runs: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]Run)
	for rows.Next() {
		var r Run
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.Stage, &r.Input, &r.Output,
			&r.Rows, &r.Skipped, &r.Dropped, &r.StartedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		latest[r.Stage] = r
	}
	return latest, rows.Err()
}
