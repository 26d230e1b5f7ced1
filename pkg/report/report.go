// Package report defines the per-generation census records produced by the
// simulation engine and the persistence contract used to store them.
package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Run identifies one simulation run together with the parameters it was
// started with.
type Run struct {
	ID        string          `json:"id"`
	Seed      int64           `json:"seed"`
	StartedAt time.Time       `json:"started_at"`
	Params    json.RawMessage `json:"params,omitempty"`
}

// Generation is the aggregate census the engine exposes once per cycle.
// Rates are fractions of the 2N chromosome copies held by living adults;
// DriveCarrierRate is a fraction of individuals.
type Generation struct {
	RunID          string  `json:"run_id"`
	Generation     int     `json:"generation"`
	PopulationSize int     `json:"population_size"`
	Females        int     `json:"females"`
	Males          int     `json:"males"`
	CompleteDrive  float64 `json:"complete_drive_rate"`
	CompleteR1     float64 `json:"complete_r1_rate"`
	PartialR1      float64 `json:"partial_r1_rate"`
	CompleteR2     float64 `json:"complete_r2_rate"`
	PartialR2      float64 `json:"partial_r2_rate"`
	WildTypeRate   float64 `json:"wild_type_rate"`
	DriveCarrier   float64 `json:"drive_carrier_rate"`
	ExpectedNext   float64 `json:"expected_next_size"`
}

// Store persists run metadata and generation census rows. Implementations
// live under internal/infra/persistence.
type Store interface {
	// BeginRun registers a run before its first generation is recorded.
	BeginRun(ctx context.Context, run Run) error
	// AppendGeneration stores one census row. Appending the same run and
	// generation twice replaces the earlier row.
	AppendGeneration(ctx context.Context, gen Generation) error
	// ListGenerations returns the stored rows for a run ordered by
	// generation ascending.
	ListGenerations(ctx context.Context, runID string) ([]Generation, error)
	// Close releases the backing resources.
	Close() error
}

var csvHeader = []string{
	"generation", "population_size", "females", "males",
	"complete_drive_rate", "complete_r1_rate", "partial_r1_rate",
	"complete_r2_rate", "partial_r2_rate", "wild_type_rate",
	"drive_carrier_rate", "expected_next_size",
}

// WriteCSV encodes the census rows as CSV with a header line.
func WriteCSV(w io.Writer, gens []Generation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, g := range gens {
		row := []string{
			strconv.Itoa(g.Generation),
			strconv.Itoa(g.PopulationSize),
			strconv.Itoa(g.Females),
			strconv.Itoa(g.Males),
			formatRate(g.CompleteDrive),
			formatRate(g.CompleteR1),
			formatRate(g.PartialR1),
			formatRate(g.CompleteR2),
			formatRate(g.PartialR2),
			formatRate(g.WildTypeRate),
			formatRate(g.DriveCarrier),
			formatRate(g.ExpectedNext),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write generation %d: %w", g.Generation, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
