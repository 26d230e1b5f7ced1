package sim

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"genedrive/pkg/genome"
	"genedrive/pkg/report"
)

const opGeneration = "generation"

// Options configures engine construction. Zero values select defaults: one
// worker per CPU, no metrics, no report store, a generated run ID.
type Options struct {
	Workers int
	Metrics MetricsRecorder
	Store   report.Store
	RunID   string
}

// Engine drives the discrete generation cycle: seeding, parallel offspring
// construction, the generation-end barrier, and census reporting.
type Engine struct {
	cfg     *Config
	pop     *Population
	rng     *Stream
	metrics MetricsRecorder
	store   report.Store
	workers int
	runID   string
}

// NewEngine validates the configuration and builds an engine seeded with
// the wild-type founder population at capacity. Seed 0 selects a
// time-based seed; use Seed() to recover it for replay.
func NewEngine(cfg *Config, seed int64, opts Options) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NopMetricsRecorder{}
	}
	runID := opts.RunID
	if runID == "" {
		runID = newRunID()
	}
	e := &Engine{
		cfg:     cfg,
		pop:     NewPopulation(cfg.Capacity),
		rng:     NewStream(seed),
		metrics: metrics,
		store:   opts.Store,
		workers: workers,
		runID:   runID,
	}
	e.pop.Add(cfg.wildTypeFounders()...)
	return e, nil
}

func newRunID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return "run-" + hex.EncodeToString(b[:])
}

// RunID returns the identifier reports are filed under.
func (e *Engine) RunID() string {
	return e.runID
}

// Seed returns the base RNG seed in use.
func (e *Engine) Seed() int64 {
	return e.rng.Seed()
}

// Population exposes the population container, chiefly for inspection in
// tests and reporting.
func (e *Engine) Population() *Population {
	return e.pop
}

// Run executes the configured number of generation cycles and returns the
// census rows in order. Cancellation is honored only at generation
// boundaries; interrupting mid-generation would leave the population
// inconsistent. Extinction is a valid terminal state, not an error: empty
// generations simply produce empty censuses until the run ends.
func (e *Engine) Run(ctx context.Context) ([]report.Generation, error) {
	if e.store != nil {
		params, err := json.Marshal(e.cfg)
		if err != nil {
			return nil, fmt.Errorf("encode params: %w", err)
		}
		run := report.Run{ID: e.runID, Seed: e.rng.Seed(), StartedAt: time.Now().UTC(), Params: params}
		if err := e.store.BeginRun(ctx, run); err != nil {
			return nil, fmt.Errorf("begin run: %w", err)
		}
	}

	reports := make([]report.Generation, 0, e.cfg.Generations)
	for gen := 1; gen <= e.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		rep, err := e.step(ctx, gen)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// step advances one generation: optional drop injection, reproduction
// against the immutable adult snapshot, female carry-over, the barrier
// swap, and the census.
func (e *Engine) step(ctx context.Context, generation int) (report.Generation, error) {
	start := time.Now()

	if generation == e.cfg.DropGeneration && e.cfg.DropSize > 0 {
		e.pop.Add(e.cfg.DropCohort(e.rng)...)
	}

	adults := e.pop.Snapshot()
	next, err := e.breedGeneration(adults, generation)
	if err != nil {
		e.metrics.Observe(ctx, opGeneration, false, time.Since(start))
		return report.Generation{}, err
	}

	// A fraction of females lives through the barrier into the next cycle.
	if e.cfg.RateFemalesSurvive > 0 {
		for _, f := range adults.Females() {
			if e.rng.Float64() < e.cfg.RateFemalesSurvive {
				f.Age++
				next = append(next, f)
			}
		}
	}

	e.pop.Replace(next)
	e.metrics.SetPopulation(e.pop.Size())

	rep := e.cfg.Census(e.runID, generation, e.pop)
	if e.store != nil {
		if err := e.store.AppendGeneration(ctx, rep); err != nil {
			e.metrics.Observe(ctx, opGeneration, false, time.Since(start))
			return rep, fmt.Errorf("append generation %d: %w", generation, err)
		}
	}
	e.metrics.Observe(ctx, opGeneration, true, time.Since(start))
	return rep, nil
}

// breedGeneration constructs all offspring of the cycle. Females are
// partitioned across workers in round-robin order and every worker draws
// from its own forked stream, so no offspring observes another in
// progress; the per-worker broods merge in worker order at the barrier.
func (e *Engine) breedGeneration(adults *Snapshot, generation int) ([]*genome.Individual, error) {
	females := adults.Females()
	workers := e.workers
	if workers > len(females) {
		workers = len(females)
	}
	if workers == 0 {
		return nil, nil
	}

	broods := make([][]*genome.Individual, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		stream := e.rng.Fork(int64(generation)<<16 | int64(w))
		g.Go(func() error {
			var brood []*genome.Individual
			for i := w; i < len(females); i += workers {
				offspring, err := reproduce(females[i], adults, e.cfg, stream)
				if err != nil {
					return err
				}
				brood = append(brood, offspring...)
			}
			broods[w] = brood
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var next []*genome.Individual
	for _, brood := range broods {
		next = append(next, brood...)
	}
	return next, nil
}
