// Command genedrive runs a CRISPR gene-drive population simulation
// configured through GENEDRIVE_* environment variables, persists the
// per-generation census and optionally archives a CSV export.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	env "github.com/caarlos0/env/v11"

	"genedrive/internal/blob"
	"genedrive/internal/sim"
	"genedrive/pkg/report"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "genedrive:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("genedrive", flag.ContinueOnError)
	seed := fs.Int64("seed", 0, "base RNG seed (0 selects a time-based seed)")
	workers := fs.Int("workers", 0, "breeding workers (0 selects one per CPU)")
	quiet := fs.Bool("quiet", false, "suppress per-generation census output")
	archive := fs.Bool("archive", false, "export the census CSV to the blob archive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg sim.Config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sim.OpenReportStore(ctx)
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}
	defer func() { _ = store.Close() }()

	engine, err := sim.NewEngine(&cfg, *seed, sim.Options{
		Workers: *workers,
		Metrics: sim.NewExpvarMetricsRecorder("genedrive"),
		Store:   store,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run %s seed %d\n", engine.RunID(), engine.Seed())
	reports, runErr := engine.Run(ctx)
	if !*quiet {
		for _, rep := range reports {
			printCensus(rep)
		}
	}
	if runErr != nil {
		return runErr
	}

	if *archive {
		if err := archiveCSV(ctx, engine.RunID(), reports); err != nil {
			return fmt.Errorf("archive csv: %w", err)
		}
	}
	return nil
}

func printCensus(rep report.Generation) {
	fmt.Printf("gen %4d size %6d (f %d / m %d) drive %.4f wt %.4f r1 %.4f r2 %.4f carriers %.4f\n",
		rep.Generation, rep.PopulationSize, rep.Females, rep.Males,
		rep.CompleteDrive, rep.WildTypeRate, rep.CompleteR1, rep.CompleteR2,
		rep.DriveCarrier)
}

func archiveCSV(ctx context.Context, runID string, reports []report.Generation) error {
	archive, err := blob.Open(ctx)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, reports); err != nil {
		return err
	}
	key := fmt.Sprintf("runs/%s/reports.csv", runID)
	info, err := archive.Put(ctx, key, &buf, blob.PutOptions{
		ContentType: "text/csv",
		Metadata:    map[string]string{"run_id": runID},
	})
	if err != nil {
		return err
	}
	fmt.Printf("archived %s (%d bytes, %s)\n", info.Key, info.Size, archive.Driver())
	return nil
}
