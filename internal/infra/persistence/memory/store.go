// Package memory provides an in-memory report store used for tests and
// ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"genedrive/pkg/report"
)

// Compile-time contract assertion.
var _ report.Store = (*Store)(nil)

// Store keeps runs and census rows in maps guarded by one mutex.
type Store struct {
	mu   sync.RWMutex
	runs map[string]report.Run
	gens map[string]map[int]report.Generation
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		runs: make(map[string]report.Run),
		gens: make(map[string]map[int]report.Generation),
	}
}

// BeginRun registers a run. Re-registering an ID is rejected.
func (s *Store) BeginRun(_ context.Context, run report.Run) error {
	if run.ID == "" {
		return fmt.Errorf("run id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.runs[run.ID]; exists {
		return fmt.Errorf("run %q already exists", run.ID)
	}
	s.runs[run.ID] = run
	s.gens[run.ID] = make(map[int]report.Generation)
	return nil
}

// AppendGeneration stores one census row, replacing any earlier row for
// the same run and generation.
func (s *Store) AppendGeneration(_ context.Context, gen report.Generation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.gens[gen.RunID]
	if !ok {
		return fmt.Errorf("run %q not found", gen.RunID)
	}
	rows[gen.Generation] = gen
	return nil
}

// ListGenerations returns the stored rows ordered by generation.
func (s *Store) ListGenerations(_ context.Context, runID string) ([]report.Generation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.gens[runID]
	if !ok {
		return nil, fmt.Errorf("run %q not found", runID)
	}
	out := make([]report.Generation, 0, len(rows))
	for _, g := range rows {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Generation < out[j].Generation })
	return out, nil
}

// GetRun retrieves run metadata.
func (s *Store) GetRun(runID string) (report.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[runID]
	return run, ok
}

// Close implements report.Store; the memory store holds no resources.
func (s *Store) Close() error {
	return nil
}
