// Package history records submitted jobs in a local SQLite database so
// past conversions can be listed and their artifacts re-downloaded.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// SQLite driver for database/sql
	_ "github.com/mattn/go-sqlite3"

	"github.com/arstropica/gif-converter/internal/models"
)

// ErrNotFound is returned when no submission matches the requested job ID.
var ErrNotFound = errors.New("history: job not found")

// Record is one locally tracked submission.
type Record struct {
	JobID         string
	SourcePath    string
	OutputPath    string
	Status        string
	ErrorMessage  string
	OriginalSize  int64
	ConvertedSize int64
	CreatedAt     time.Time
}

// Tracker persists submission records.
type Tracker struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Tracker, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	t := &Tracker{db: db}
	if err := t.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return t, nil
}

// Close releases the underlying database handle.
func (t *Tracker) Close() error {
	return t.db.Close()
}

func (t *Tracker) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS submissions (
		job_id TEXT PRIMARY KEY,
		source_path TEXT NOT NULL,
		output_path TEXT,
		status TEXT NOT NULL,
		error_message TEXT,
		original_size INTEGER DEFAULT 0,
		converted_size INTEGER DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at);
	`

	if _, err := t.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// RecordSubmission inserts a newly created job. Re-recording an existing
// job ID is a no-op.
func (t *Tracker) RecordSubmission(rec *Record) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	status := rec.Status
	if status == "" {
		status = string(models.StatusQueued)
	}

	_, err := t.db.Exec(`
		INSERT OR IGNORE INTO submissions (
			job_id, source_path, output_path, status, created_at
		) VALUES (?, ?, ?, ?, ?)
	`, rec.JobID, rec.SourcePath, rec.OutputPath, status, createdAt)
	if err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}
	return nil
}

// RecordOutcome updates a submission with its terminal state.
func (t *Tracker) RecordOutcome(jobID string, job *models.Job, outputPath string) error {
	_, err := t.db.Exec(`
		UPDATE submissions
		SET status = ?, error_message = ?, original_size = ?, converted_size = ?,
			output_path = CASE WHEN ? != '' THEN ? ELSE output_path END
		WHERE job_id = ?
	`, string(job.Status), job.ErrorMessage, job.OriginalSize, job.ConvertedSize,
		outputPath, outputPath, jobID)
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}
	return nil
}

// Get retrieves a single submission by job ID.
func (t *Tracker) Get(jobID string) (*Record, error) {
	rec, err := scanRecord(t.db.QueryRow(`
		SELECT job_id, source_path, COALESCE(output_path, ''), status,
			COALESCE(error_message, ''), COALESCE(original_size, 0),
			COALESCE(converted_size, 0), created_at
		FROM submissions WHERE job_id = ?
	`, jobID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

// Recent returns up to limit submissions, newest first.
func (t *Tracker) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := t.db.Query(`
		SELECT job_id, source_path, COALESCE(output_path, ''), status,
			COALESCE(error_message, ''), COALESCE(original_size, 0),
			COALESCE(converted_size, 0), created_at
		FROM submissions ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var rec Record
	err := s.Scan(&rec.JobID, &rec.SourcePath, &rec.OutputPath, &rec.Status,
		&rec.ErrorMessage, &rec.OriginalSize, &rec.ConvertedSize, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan submission row: %w", err)
	}
	return &rec, nil
}
