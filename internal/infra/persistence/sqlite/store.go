// Package sqlite provides an embedded SQLite-backed report store using the
// pure Go driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"genedrive/pkg/report"
)

// Compile-time contract assertion.
var _ report.Store = (*Store)(nil)

// Store appends census rows as JSON payloads keyed by run and generation.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (and creates if needed) the database at path, defaulting
// to ./genedrive.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "genedrive.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS generation_reports (
		run_id TEXT NOT NULL,
		generation INTEGER NOT NULL,
		payload BLOB NOT NULL,
		PRIMARY KEY (run_id, generation)
	)`); err != nil {
		return nil, fmt.Errorf("create reports table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// BeginRun registers run metadata before its first census row.
func (s *Store) BeginRun(ctx context.Context, run report.Run) error {
	if run.ID == "" {
		return fmt.Errorf("run id required")
	}
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, payload) VALUES (?, ?)`, run.ID, payload); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// AppendGeneration upserts one census row.
func (s *Store) AppendGeneration(ctx context.Context, gen report.Generation) error {
	payload, err := json.Marshal(gen)
	if err != nil {
		return fmt.Errorf("encode generation: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO generation_reports (run_id, generation, payload) VALUES (?, ?, ?)
		 ON CONFLICT (run_id, generation) DO UPDATE SET payload = excluded.payload`,
		gen.RunID, gen.Generation, payload); err != nil {
		return fmt.Errorf("insert generation %d: %w", gen.Generation, err)
	}
	return nil
}

// ListGenerations returns the stored rows ordered by generation.
func (s *Store) ListGenerations(ctx context.Context, runID string) ([]report.Generation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM generation_reports WHERE run_id = ? ORDER BY generation`, runID)
	if err != nil {
		return nil, fmt.Errorf("select generations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []report.Generation
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var gen report.Generation
		if err := json.Unmarshal(payload, &gen); err != nil {
			return nil, fmt.Errorf("decode generation: %w", err)
		}
		out = append(out, gen)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
