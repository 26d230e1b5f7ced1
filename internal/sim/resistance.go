package sim

import "genedrive/pkg/genome"

// resistanceAllele classifies a single-locus cut: in-frame repair yields a
// benign R1 allele with probability R1_OCCURRENCE_RATE, otherwise the
// locus is disrupted to R2. Only single-cut events reach this choice;
// concurrent cuts collapse into a deletion span instead.
func (c *Config) resistanceAllele(rng *Stream) genome.AlleleState {
	if rng.Float64() < c.R1OccurrenceRate {
		return genome.R1
	}
	return genome.R2
}
