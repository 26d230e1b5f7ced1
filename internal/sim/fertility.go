package sim

import "genedrive/pkg/genome"

// Fertile maps genotype and sex to a fertility verdict under the
// configured suppression mode. Drive and R2 chromosome counts are taken
// over both copies: a copy counts as drive only when the cassette is
// complete, and as R2 when any locus is disrupted.
func (c *Config) Fertile(ind *genome.Individual) bool {
	driveCount := ind.DriveDose()
	r2Count := ind.R2ChromosomeCount()

	if ind.Sex == genome.Female {
		if c.RecessiveFemaleSterileSuppression && driveCount+r2Count == 2 {
			return false
		}
		if c.HaplolethalSuppression && driveCount == 2 {
			return false
		}
		return true
	}

	if (c.TADSModification || c.TADSAutosomalSuppression) && r2Count == 2 {
		return false
	}
	if c.TADSAutosomalSuppression && driveCount == 2 {
		return false
	}
	return true
}
