package sim

import (
	"math"
	"testing"

	"genedrive/pkg/genome"
)

func TestFitnessGeometricMean(t *testing.T) {
	cfg := defaultConfig()
	cfg.DriveFitnessValue = 0.81
	cfg.R2FitnessValue = 0.49

	cases := []struct {
		name string
		ind  *genome.Individual
		want float64
	}{
		{"wild type", wildTypeParent(genome.Female, 4), 1},
		{"drive het", genome.NewIndividual(genome.Female, genome.NewUniform(4, genome.Drive), genome.NewWildType(4)), 0.9},
		{"drive homozygote", driveHomozygote(genome.Female, 4), 0.81},
		{"r2 het", genome.NewIndividual(genome.Female, genome.Chromosome{genome.WildType, genome.R2, genome.WildType, genome.WildType}, genome.NewWildType(4)), 0.7},
		{"drive over r2", genome.NewIndividual(genome.Female, genome.NewUniform(4, genome.Drive), genome.NewUniform(4, genome.R2)), 0.63},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cfg.Fitness(tc.ind); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("Fitness = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFitnessScaleAndClamp(t *testing.T) {
	cfg := defaultConfig()
	ind := wildTypeParent(genome.Female, 4)
	ind.FitnessScale = 2
	if got := cfg.Fitness(ind); got != 1 {
		t.Fatalf("fitness must clamp at 1, got %v", got)
	}
	ind.FitnessScale = 0.5
	if got := cfg.Fitness(ind); got != 0.5 {
		t.Fatalf("fitness scale must apply, got %v", got)
	}
}

func TestFitnessGeneDisruptionPenalty(t *testing.T) {
	cfg := defaultConfig()
	cfg.GeneDisruptionDrive = true
	cfg.DriveFitnessValue = 1
	cfg.R2FitnessValue = 1
	cfg.GeneDisruptionFitnessMultiplier = 0.6

	// Both copies lost the target gene: one full cassette, one disrupted.
	both := genome.NewIndividual(genome.Female,
		genome.NewUniform(4, genome.Drive),
		genome.Chromosome{genome.R2, genome.WildType, genome.WildType, genome.WildType})
	if got := cfg.Fitness(both); math.Abs(got-0.6) > 1e-12 {
		t.Fatalf("disruption penalty not applied: %v, want 0.6", got)
	}

	// One functional copy remains: no penalty.
	het := genome.NewIndividual(genome.Female, genome.NewUniform(4, genome.Drive), genome.NewWildType(4))
	if got := cfg.Fitness(het); got != 1 {
		t.Fatalf("functional copy must escape the penalty, got %v", got)
	}

	// A partial cassette with no r2 is still a functional copy.
	partial := genome.NewIndividual(genome.Female,
		genome.NewUniform(4, genome.Drive),
		genome.Chromosome{genome.Drive, genome.Drive, genome.WildType, genome.WildType})
	if got := cfg.Fitness(partial); got != 1 {
		t.Fatalf("partial drive without r2 must escape the penalty, got %v", got)
	}
}

func TestFitnessSomaticExpressionPenalty(t *testing.T) {
	cfg := defaultConfig()
	cfg.RecessiveFemaleSterileSuppression = true
	cfg.DriveFitnessValue = 1
	cfg.FemaleSomaticFitnessValue = 0.5

	het := genome.NewIndividual(genome.Female, genome.NewUniform(4, genome.Drive), genome.NewWildType(4))
	if got := cfg.Fitness(het); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("drive/wild-type het fitness = %v, want 0.5", got)
	}

	hom := driveHomozygote(genome.Female, 4)
	if got := cfg.Fitness(hom); got != 1 {
		t.Fatalf("homozygote must escape the somatic penalty, got %v", got)
	}
}

func TestFertile(t *testing.T) {
	n := 4
	r2het := func(sex genome.Sex) *genome.Individual {
		return genome.NewIndividual(sex, genome.NewUniform(n, genome.R2), genome.NewWildType(n))
	}
	r2hom := func(sex genome.Sex) *genome.Individual {
		return genome.NewIndividual(sex, genome.NewUniform(n, genome.R2), genome.NewUniform(n, genome.R2))
	}
	driveR2 := func(sex genome.Sex) *genome.Individual {
		return genome.NewIndividual(sex, genome.NewUniform(n, genome.Drive), genome.NewUniform(n, genome.R2))
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		ind    *genome.Individual
		want   bool
	}{
		{"default female", func(*Config) {}, wildTypeParent(genome.Female, n), true},
		{"default male r2 homozygote", func(*Config) {}, r2hom(genome.Male), true},
		{
			"recessive sterile female drive plus r2",
			func(c *Config) { c.RecessiveFemaleSterileSuppression = true },
			driveR2(genome.Female),
			false,
		},
		{
			"recessive sterile female het",
			func(c *Config) { c.RecessiveFemaleSterileSuppression = true },
			r2het(genome.Female),
			true,
		},
		{
			"recessive sterile male unaffected",
			func(c *Config) { c.RecessiveFemaleSterileSuppression = true },
			driveR2(genome.Male),
			true,
		},
		{
			"haplolethal suppression female drive homozygote",
			func(c *Config) { c.HaplolethalDrive = true; c.HaplolethalSuppression = true },
			driveHomozygote(genome.Female, n),
			false,
		},
		{
			"haplolethal suppression male drive homozygote unaffected",
			func(c *Config) { c.HaplolethalDrive = true; c.HaplolethalSuppression = true },
			driveHomozygote(genome.Male, n),
			true,
		},
		{
			"tads modification male r2 homozygote",
			func(c *Config) { c.HomingDrive = false; c.TADSModification = true },
			r2hom(genome.Male),
			false,
		},
		{
			"tads modification female r2 homozygote unaffected",
			func(c *Config) { c.HomingDrive = false; c.TADSModification = true },
			r2hom(genome.Female),
			true,
		},
		{
			"tads autosomal male drive homozygote",
			func(c *Config) { c.HomingDrive = false; c.TADSAutosomalSuppression = true },
			driveHomozygote(genome.Male, n),
			false,
		},
		{
			"tads autosomal male drive het",
			func(c *Config) { c.HomingDrive = false; c.TADSAutosomalSuppression = true },
			genome.NewIndividual(genome.Male, genome.NewUniform(n, genome.Drive), genome.NewWildType(n)),
			true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			if got := cfg.Fertile(tc.ind); got != tc.want {
				t.Fatalf("Fertile = %v, want %v", got, tc.want)
			}
		})
	}
}
