package sim

import "genedrive/pkg/genome"

// DropCohort builds the release batch injected at the configured
// generation: DROP_SIZE individuals with an explicit drive genotype, sex
// drawn against the configured male fraction, and either one or two
// complete-drive chromosomes depending on the zygosity setting. Under a
// sex-linked drive the paternal copy of a male is forced wild type.
func (c *Config) DropCohort(rng *Stream) []*genome.Individual {
	cohort := make([]*genome.Individual, 0, c.DropSize)
	for i := 0; i < c.DropSize; i++ {
		sex := genome.Female
		if rng.Float64() < c.DropMaleFraction {
			sex = genome.Male
		}
		paternal := genome.NewUniform(c.NumGRNAs, genome.Drive)
		maternal := genome.NewUniform(c.NumGRNAs, genome.Drive)
		if c.HeterozygousDrop {
			paternal = genome.NewWildType(c.NumGRNAs)
			if c.XLinkedDrive && sex == genome.Male {
				// Drive on the X: keep the cassette on the maternal copy.
			} else if rng.Bool() {
				paternal, maternal = maternal, paternal
			}
		}
		if c.XLinkedDrive && sex == genome.Male {
			paternal.Reset(genome.WildType)
		}
		cohort = append(cohort, genome.NewIndividual(sex, paternal, maternal))
	}
	return cohort
}

// wildTypeFounders builds the pre-drop baseline population at capacity,
// alternating sexes for an even ratio.
func (c *Config) wildTypeFounders() []*genome.Individual {
	founders := make([]*genome.Individual, 0, c.Capacity)
	for i := 0; i < c.Capacity; i++ {
		sex := genome.Female
		if i%2 == 1 {
			sex = genome.Male
		}
		founders = append(founders, genome.NewIndividual(sex,
			genome.NewWildType(c.NumGRNAs), genome.NewWildType(c.NumGRNAs)))
	}
	return founders
}
