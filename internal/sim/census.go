package sim

import (
	"genedrive/pkg/genome"
	"genedrive/pkg/report"
)

// Census computes the per-generation aggregate queries exposed to the
// reporting collaborator: chromosome-level rates of complete and partial
// resistance, wild type, the drive-carrier fraction of individuals, and
// the expected next-generation size under no-drive density scaling.
func (c *Config) Census(runID string, generation int, pop *Population) report.Generation {
	gen := report.Generation{
		RunID:          runID,
		Generation:     generation,
		PopulationSize: pop.Size(),
	}

	var completeDrive, completeR1, partialR1, completeR2, partialR2, wildType int
	var carriers int
	for _, ind := range pop.Individuals() {
		if ind.Sex == genome.Female {
			gen.Females++
		} else {
			gen.Males++
		}
		if ind.CarriesDrive() {
			carriers++
		}
		for _, ch := range ind.Chromosomes() {
			switch {
			case ch.IsComplete(genome.Drive):
				completeDrive++
			case ch.IsComplete(genome.R1):
				completeR1++
			case ch.IsComplete(genome.R2):
				completeR2++
			case ch.IsComplete(genome.WildType):
				wildType++
			case ch.Contains(genome.R2):
				partialR2++
			case ch.Contains(genome.R1):
				partialR1++
			}
		}
	}

	if n := pop.Size(); n > 0 {
		copies := float64(2 * n)
		gen.CompleteDrive = float64(completeDrive) / copies
		gen.CompleteR1 = float64(completeR1) / copies
		gen.PartialR1 = float64(partialR1) / copies
		gen.CompleteR2 = float64(completeR2) / copies
		gen.PartialR2 = float64(partialR2) / copies
		gen.WildTypeRate = float64(wildType) / copies
		gen.DriveCarrier = float64(carriers) / float64(n)
	}

	// The no-drive expectation mirrors the brood-size normalisation: a
	// drive-free population at capacity holds steady.
	density := c.DensityFactor(pop.Size())
	gen.ExpectedNext = density*float64(pop.Size())/(1+c.RateFemalesSurvive) +
		c.RateFemalesSurvive*float64(gen.Females)
	return gen
}
