package sim

import "math"

// Cutting is split into three germline/embryo sub-phases; homology-directed
// repair draws a single phase.
const (
	germlinePhases = 3
	homingPhases   = 1
)

// CutRateSchedule computes the per-locus cut probability vector for a base
// rate. When gRNA saturation is simulated the loci compete for a shared
// nuclease pool, so per-locus rates shrink as NUM_GRNAS grows; activity
// variation ramps efficiency down linearly away from the first locus. The
// dose multiplier scales nuclease exposure (used for maternal deposition).
// Pure function of the configuration and arguments.
func (c *Config) CutRateSchedule(rate float64, phases int, dose float64) []float64 {
	n := c.NumGRNAs
	rates := make([]float64, n)
	if rate <= 0 || dose <= 0 {
		return rates
	}
	grnaFactor := 1.0
	if c.GRNASaturationSimulated {
		grnaFactor = float64(n)
	}
	casFactor := c.GlobalSaturationFactor * grnaFactor / (c.GlobalSaturationFactor - 1 + grnaFactor)
	step := 0.0
	if n > 1 {
		step = 2 * c.GRNAActivityVariation / float64(n-1)
	}
	for i := 0; i < n; i++ {
		activity := c.GRNAActivityVariation - float64(i)*step
		localCas := casFactor * (1 + activity)
		exponent := dose * localCas / (float64(phases) * grnaFactor)
		rates[i] = 1 - math.Pow(1-rate, exponent)
	}
	return rates
}
