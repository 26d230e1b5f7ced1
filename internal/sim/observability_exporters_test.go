package sim

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestExpvarMetricsRecorderAggregates(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	ctx := context.Background()

	rec.Observe(ctx, "generation", true, 20*time.Millisecond)
	rec.Observe(ctx, "generation", true, 30*time.Millisecond)
	rec.Observe(ctx, "generation", false, 5*time.Millisecond)
	rec.Observe(ctx, "", true, time.Second) // ignored
	rec.SetPopulation(123)

	snap := rec.Snapshot()
	if got := snap.Results["generation"]["success"]; got != 2 {
		t.Fatalf("success count = %d, want 2", got)
	}
	if got := snap.Results["generation"]["error"]; got != 1 {
		t.Fatalf("error count = %d, want 1", got)
	}
	if got := snap.DurationsMS["generation"]; got != 55 {
		t.Fatalf("duration total = %v ms, want 55", got)
	}
	if snap.Population != 123 {
		t.Fatalf("population = %d, want 123", snap.Population)
	}
	if len(snap.Results) != 1 {
		t.Fatalf("empty operation names must be dropped: %+v", snap.Results)
	}
}

func TestExpvarMetricsRecorderUniqueNames(t *testing.T) {
	a := NewExpvarMetricsRecorder("")
	b := NewExpvarMetricsRecorder("")
	if a.Name() == b.Name() {
		t.Fatalf("generated names must be unique, both %q", a.Name())
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("NewPrometheusMetricsRecorder: %v", err)
	}

	rec.Observe(context.Background(), "generation", true, 10*time.Millisecond)
	rec.Observe(context.Background(), "generation", false, 10*time.Millisecond)
	rec.SetPopulation(77)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := map[string]bool{}
	for _, fam := range families {
		found[fam.GetName()] = true
		if fam.GetName() == "genedrive_population_size" {
			if got := fam.GetMetric()[0].GetGauge().GetValue(); got != 77 {
				t.Fatalf("population gauge = %v, want 77", got)
			}
		}
	}
	for _, name := range []string{
		"genedrive_operations_total",
		"genedrive_operation_duration_seconds",
		"genedrive_population_size",
	} {
		if !found[name] {
			t.Fatalf("metric family %s not exported", name)
		}
	}
}

func TestPrometheusMetricsRecorderDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusMetricsRecorder(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("re-registering the same collectors must fail")
	}
}
