// Package ledger records strip-job submissions and trajectory frame counts in
// a local SQLite database, so past runs can be inspected after the fact with
// `gbsaprep jobs`.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Job outcome states mirroring the per-mutation state machine.
const (
	StatusSubmitted = "submitted"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// Job is one recorded per-mutation outcome.
type Job struct {
	RunID    string
	Mutation string
	JobID    string // scheduler job id, empty unless submitted
	Frames   int    // counted trajectory frames, 0 when unknown
	Status   string
	Detail   string // failure reason for skipped/failed entries
	Created  time.Time
}

// Store is a SQLite-backed job ledger.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the ledger database at dbPath.
// Use ":memory:" for an in-memory database in tests.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		mutation TEXT NOT NULL,
		job_id TEXT,
		frames INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		detail TEXT,
		created INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_jobs_run_id ON jobs(run_id);
	CREATE INDEX IF NOT EXISTS idx_jobs_mutation ON jobs(mutation);
	`
	_, err := s.db.Exec(schema)
	return err
}

// BeginRun registers a new run and returns its id.
func (s *Store) BeginRun(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, started) VALUES (?, ?)",
		runID, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return runID, nil
}

// RecordJob appends one per-mutation outcome.
func (s *Store) RecordJob(ctx context.Context, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := job.Created
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO jobs (run_id, mutation, job_id, frames, status, detail, created) VALUES (?, ?, ?, ?, ?, ?, ?)",
		job.RunID, job.Mutation, job.JobID, job.Frames, job.Status, job.Detail, created.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// ListJobs returns the most recent entries, newest first. limit <= 0 means all.
func (s *Store) ListJobs(ctx context.Context, limit int) ([]Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := "SELECT run_id, mutation, job_id, frames, status, detail, created FROM jobs ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		var jobID, detail sql.NullString
		var created int64
		if err := rows.Scan(&j.RunID, &j.Mutation, &jobID, &j.Frames, &j.Status, &detail, &created); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		j.JobID = jobID.String
		j.Detail = detail.String
		j.Created = time.Unix(created, 0)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return jobs, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
