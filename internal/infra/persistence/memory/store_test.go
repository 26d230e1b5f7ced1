package memory

import (
	"context"
	"testing"
	"time"

	"genedrive/pkg/report"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	defer func() { _ = s.Close() }()

	run := report.Run{ID: "run-1", Seed: 9, StartedAt: time.Now().UTC()}
	if err := s.BeginRun(ctx, run); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if err := s.BeginRun(ctx, run); err == nil {
		t.Fatalf("duplicate run id must be rejected")
	}
	if err := s.BeginRun(ctx, report.Run{}); err == nil {
		t.Fatalf("empty run id must be rejected")
	}

	for _, g := range []int{3, 1, 2} {
		gen := report.Generation{RunID: "run-1", Generation: g, PopulationSize: 10 * g}
		if err := s.AppendGeneration(ctx, gen); err != nil {
			t.Fatalf("AppendGeneration(%d): %v", g, err)
		}
	}
	// Replacement of an existing row.
	if err := s.AppendGeneration(ctx, report.Generation{RunID: "run-1", Generation: 2, PopulationSize: 99}); err != nil {
		t.Fatalf("AppendGeneration replace: %v", err)
	}

	rows, err := s.ListGenerations(ctx, "run-1")
	if err != nil {
		t.Fatalf("ListGenerations: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, row := range rows {
		if row.Generation != i+1 {
			t.Fatalf("row %d has generation %d, want ascending order", i, row.Generation)
		}
	}
	if rows[1].PopulationSize != 99 {
		t.Fatalf("replaced row not returned: %+v", rows[1])
	}

	got, ok := s.GetRun("run-1")
	if !ok || got.Seed != 9 {
		t.Fatalf("GetRun = %+v, %v", got, ok)
	}
}

func TestStoreUnknownRun(t *testing.T) {
	s := NewStore()
	if err := s.AppendGeneration(context.Background(), report.Generation{RunID: "missing"}); err == nil {
		t.Fatalf("appending to an unknown run must fail")
	}
	if _, err := s.ListGenerations(context.Background(), "missing"); err == nil {
		t.Fatalf("listing an unknown run must fail")
	}
}
