// Package history persists one row per job run in a shared SQLite database,
// so `jobkit runs` can show what ran, when, and how it exited.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"jobkit/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id      TEXT PRIMARY KEY,
    job_name    TEXT NOT NULL,
    started_at  TEXT NOT NULL,
    finished_at TEXT,
    exit_code   INTEGER,
    read_only   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
`

// DefaultPath returns the shared history database location (~/.jobkit).
func DefaultPath() (string, error) {
	dir, err := config.ExpandPath("~/.jobkit")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Run is one recorded job invocation.
type Run struct {
	RunID      string
	JobName    string
	StartedAt  time.Time
	FinishedAt *time.Time
	ExitCode   *int
	ReadOnly   bool
}

// RecordStart inserts a row for a run that has just begun.
func (s *Store) RecordStart(ctx context.Context, runID, jobName string, startedAt time.Time, readOnly bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, job_name, started_at, read_only) VALUES (?, ?, ?, ?)`,
		runID, jobName, startedAt.UTC().Format(time.RFC3339Nano), boolInt(readOnly),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordFinish stamps the finish time and exit code of a run.
func (s *Store) RecordFinish(ctx context.Context, runID string, finishedAt time.Time, exitCode int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, exit_code = ? WHERE run_id = ?`,
		finishedAt.UTC().Format(time.RFC3339Nano), exitCode, runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, job_name, started_at, finished_at, exit_code, read_only
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  string
			finishedAt sql.NullString
			exitCode   sql.NullInt64
			readOnly   int
		)
		if err := rows.Scan(&run.RunID, &run.JobName, &startedAt, &finishedAt, &exitCode, &readOnly); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if finishedAt.Valid {
			parsed, err := time.Parse(time.RFC3339Nano, finishedAt.String)
			if err != nil {
				return nil, fmt.Errorf("parse finished_at: %w", err)
			}
			run.FinishedAt = &parsed
		}
		if exitCode.Valid {
			code := int(exitCode.Int64)
			run.ExitCode = &code
		}
		run.ReadOnly = readOnly != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func boolInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
