package sim

import (
	"math"

	"genedrive/pkg/genome"
)

// Fitness maps a genotype to a relative fitness scalar in [0,1]. Each
// chromosome contributes the drive fitness value when it carries the
// complete cassette, the R2 fitness value when any locus is disrupted, and
// 1 otherwise; the copies combine as a geometric mean. Gene-disruption
// drives subtract a disruption penalty when both copies have lost the
// target gene; recessive-female-sterile suppression drives instead apply a
// somatic expression penalty to drive/wild-type heterozygotes. The two
// overlays are mutually exclusive by configuration.
func (c *Config) Fitness(ind *genome.Individual) float64 {
	v1 := c.chromosomeFitness(ind.Paternal)
	v2 := c.chromosomeFitness(ind.Maternal)
	f := math.Sqrt(v1*v2) * ind.FitnessScale

	switch {
	case c.GeneDisruptionDrive:
		if driveOrR2(ind.Paternal) && driveOrR2(ind.Maternal) {
			f -= 1 - c.GeneDisruptionFitnessMultiplier
		}
	case c.RecessiveFemaleSterileSuppression:
		if driveWildTypeHet(ind) {
			f *= c.FemaleSomaticFitnessValue
		}
	}

	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (c *Config) chromosomeFitness(ch genome.Chromosome) float64 {
	if ch.IsComplete(genome.Drive) {
		return c.DriveFitnessValue
	}
	if ch.Contains(genome.R2) {
		return c.R2FitnessValue
	}
	return 1
}

// driveOrR2 reports a chromosome that has lost the target gene's function:
// a complete drive cassette or any disrupted locus.
func driveOrR2(ch genome.Chromosome) bool {
	return ch.IsComplete(genome.Drive) || ch.Contains(genome.R2)
}
