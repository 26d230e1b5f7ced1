package sim

import (
	"math"
	"testing"

	"genedrive/pkg/genome"
)

func TestDensityFactor(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.DensityFactor(cfg.Capacity); math.Abs(got-1) > 1e-12 {
		t.Fatalf("density at capacity = %v, want 1", got)
	}
	if got := cfg.DensityFactor(0); math.Abs(got-cfg.LowDensityGrowthRate) > 1e-12 {
		t.Fatalf("density at zero = %v, want the growth rate %v", got, cfg.LowDensityGrowthRate)
	}
	if cfg.DensityFactor(cfg.Capacity/2) <= 1 {
		t.Fatalf("density below capacity must exceed 1")
	}
	if cfg.DensityFactor(2*cfg.Capacity) >= 1 {
		t.Fatalf("density above capacity must fall below 1")
	}
}

func snapshotOf(inds ...*genome.Individual) *Snapshot {
	p := NewPopulation(len(inds))
	p.Add(inds...)
	return p.Snapshot()
}

func TestReproduceInfertileFemale(t *testing.T) {
	cfg := defaultConfig()
	cfg.RecessiveFemaleSterileSuppression = true
	female := genome.NewIndividual(genome.Female,
		genome.NewUniform(cfg.NumGRNAs, genome.Drive), genome.NewUniform(cfg.NumGRNAs, genome.R2))
	adults := snapshotOf(female, wildTypeParent(genome.Male, cfg.NumGRNAs))

	offspring, err := reproduce(female, adults, cfg, NewStream(21))
	if err != nil {
		t.Fatalf("reproduce: %v", err)
	}
	if len(offspring) != 0 {
		t.Fatalf("infertile female produced %d offspring", len(offspring))
	}
}

func TestReproduceNoMales(t *testing.T) {
	cfg := defaultConfig()
	female := wildTypeParent(genome.Female, cfg.NumGRNAs)
	adults := snapshotOf(female)

	offspring, err := reproduce(female, adults, cfg, NewStream(22))
	if err != nil {
		t.Fatalf("reproduce: %v", err)
	}
	if len(offspring) != 0 {
		t.Fatalf("reproduction without males produced %d offspring", len(offspring))
	}
}

func TestReproduceInfertileMateConsumesOpportunity(t *testing.T) {
	cfg := defaultConfig()
	cfg.HomingDrive = false
	cfg.TADSAutosomalSuppression = true
	female := wildTypeParent(genome.Female, cfg.NumGRNAs)
	// The only male is a sterile drive homozygote; accepting him ends the
	// opportunity with zero offspring.
	adults := snapshotOf(female, driveHomozygote(genome.Male, cfg.NumGRNAs))

	offspring, err := reproduce(female, adults, cfg, NewStream(23))
	if err != nil {
		t.Fatalf("reproduce: %v", err)
	}
	if len(offspring) != 0 {
		t.Fatalf("sterile mate produced %d offspring", len(offspring))
	}
}

func TestReproduceBroodWithinCap(t *testing.T) {
	cfg := defaultConfig()
	cfg.MaxOffspring = 8
	female := wildTypeParent(genome.Female, cfg.NumGRNAs)
	male := wildTypeParent(genome.Male, cfg.NumGRNAs)
	adults := snapshotOf(female, male)

	rng := NewStream(24)
	total := 0
	for trial := 0; trial < 100; trial++ {
		offspring, err := reproduce(female, adults, cfg, rng)
		if err != nil {
			t.Fatalf("reproduce: %v", err)
		}
		if len(offspring) > cfg.MaxOffspring {
			t.Fatalf("brood %d exceeds the cap %d", len(offspring), cfg.MaxOffspring)
		}
		total += len(offspring)
	}
	if total == 0 {
		t.Fatalf("a fertile wild-type pair far below capacity must reproduce")
	}
}

func TestReproduceZeroFitnessMaleNeverAccepted(t *testing.T) {
	cfg := defaultConfig()
	cfg.DriveFitnessValue = 0
	female := wildTypeParent(genome.Female, cfg.NumGRNAs)
	adults := snapshotOf(female, driveHomozygote(genome.Male, cfg.NumGRNAs))

	for trial := 0; trial < 50; trial++ {
		offspring, err := reproduce(female, adults, cfg, NewStream(int64(trial+1)))
		if err != nil {
			t.Fatalf("reproduce: %v", err)
		}
		if len(offspring) != 0 {
			t.Fatalf("trial %d: zero-fitness male was accepted", trial)
		}
	}
}
