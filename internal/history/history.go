// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion runs in a SQLite database so past
// batches can be reviewed without digging through output folders.
// Implements: prd005-history; docs/ARCHITECTURE § Run History.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pagexml-convert/pkg/types"
)

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at cfg.DBPath, creating parent
// directories and the schema as needed.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			mode TEXT NOT NULL,
			started_at TEXT NOT NULL,
			converted INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			input TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			reason TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_files_run_id ON run_files(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun stores one batch report and its per-file outcomes, returning the
// new run's id.
func (s *Store) RecordRun(ctx context.Context, mode types.RequestMode, report types.BatchReport) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source, mode, started_at, converted, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		report.Source, string(mode), report.StartedAt.Format(time.RFC3339),
		report.Converted, report.Skipped, report.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_files (run_id, input, output, status, reason)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range report.Outcomes {
		if _, err := stmt.ExecContext(ctx, runID, o.Input, o.Output, string(o.Status), o.Reason); err != nil {
			return 0, fmt.Errorf("inserting file record %s: %w", o.Input, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID        int64
	Source    string
	Mode      string
	StartedAt time.Time
	Converted int
	Skipped   int
	Failed    int
}

// ListRuns returns the most recent runs, newest first, up to limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, mode, started_at, converted, skipped, failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started string
		if err := rows.Scan(&r.ID, &r.Source, &r.Mode, &started, &r.Converted, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunFiles returns the per-file outcomes recorded for one run, in insertion
// order.
func (s *Store) RunFiles(ctx context.Context, runID int64) ([]types.FileOutcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT input, output, status, reason FROM run_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run files: %w", err)
	}
	defer rows.Close()

	var outcomes []types.FileOutcome
	for rows.Next() {
		var o types.FileOutcome
		var output, reason sql.NullString
		var status string
		if err := rows.Scan(&o.Input, &output, &status, &reason); err != nil {
			return nil, fmt.Errorf("scanning file record: %w", err)
		}
		o.Output = output.String
		o.Reason = reason.String
		o.Status = types.ConversionStatus(status)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
