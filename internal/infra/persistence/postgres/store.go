// Package postgres provides a PostgreSQL-backed report store that mirrors
// the sqlite schema, registered through the pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"genedrive/pkg/report"
)

// Compile-time contract assertion.
var _ report.Store = (*Store)(nil)

const defaultDSN = "postgres://localhost/genedrive?sslmode=disable"

// Store appends census rows as JSONB payloads keyed by run and generation.
type Store struct {
	db *sql.DB
}

// NewStore opens a Postgres-backed store using the provided DSN (falls
// back to a localhost default) and ensures the schema exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS generation_reports (
		run_id TEXT NOT NULL,
		generation INTEGER NOT NULL,
		payload JSONB NOT NULL,
		PRIMARY KEY (run_id, generation)
	)`); err != nil {
		return nil, fmt.Errorf("create reports table: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying handle for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

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
		`INSERT INTO runs (id, payload) VALUES ($1, $2)`, run.ID, payload); err != nil {
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
		`INSERT INTO generation_reports (run_id, generation, payload) VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, generation) DO UPDATE SET payload = excluded.payload`,
		gen.RunID, gen.Generation, payload); err != nil {
		return fmt.Errorf("insert generation %d: %w", gen.Generation, err)
	}
	return nil
}

// ListGenerations returns the stored rows ordered by generation.
func (s *Store) ListGenerations(ctx context.Context, runID string) ([]report.Generation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM generation_reports WHERE run_id = $1 ORDER BY generation`, runID)
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
