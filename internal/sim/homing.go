package sim

import "genedrive/pkg/genome"

// homingRepair attempts to copy the full drive cassette into the target
// chromosome by homology-directed repair. Callers only enter here when the
// transmitting parent carries a complete-drive chromosome and the target
// still has wild-type loci. A single-phase cut is drawn independently at
// every remaining wild-type locus; the resulting cut span (widened to
// absorb adjoining deletion gaps) determines how far each homology arm
// sits from its chromosome end, which degrades the copy success rate. On
// success the whole cassette is written; on failure a partial-HDR event
// can still convert the chromosome to a complete resistance allele, and
// otherwise the cut loci fall back to ordinary cut classification.
func homingRepair(ch genome.Chromosome, cfg *Config, rng *Stream) {
	rates := cfg.CutRateSchedule(cfg.HomingPhaseCutRate, homingPhases, 1)
	var cut []int
	for _, locus := range ch.WildTypeLoci() {
		if rng.Float64() < rates[locus] {
			cut = append(cut, locus)
		}
	}
	if len(cut) == 0 {
		return
	}

	left, right := cut[0], cut[len(cut)-1]
	for left > 0 && ch[left-1] == genome.Gap {
		left--
	}
	for right < len(ch)-1 && ch[right+1] == genome.Gap {
		right++
	}
	adjustedLeft := left
	adjustedRight := len(ch) - 1 - right

	if rng.Float64() < cfg.homingSuccessRate(adjustedLeft, adjustedRight) {
		ch.Reset(genome.Drive)
		return
	}

	if rng.Float64() < cfg.partialHDRRate(adjustedLeft, adjustedRight) {
		state := genome.R2
		r1Rate := cfg.PartialHDRR1Rate * float64(1+adjustedRight-adjustedLeft)
		if r1Rate > 0 && rng.Float64() < r1Rate && (cfg.HaplolethalDrive || cfg.RecessiveLethalDrive) {
			state = genome.R1
		}
		ch.Reset(state)
		return
	}

	classifyCutLoci(ch, cut, cfg, rng)
}

// homingSuccessRate scales the baseline copy rate down for cut spans whose
// edges sit away from the chromosome boundaries (a proxy for homology-arm
// mismatch). The result stays within [0, BASELINE_HOMING_SUCCESS_RATE].
func (c *Config) homingSuccessRate(adjustedLeft, adjustedRight int) float64 {
	leftArm := 1 - c.HomingEdgeEffect*float64(adjustedLeft)
	rightArm := 1 - c.HomingEdgeEffect*float64(adjustedRight)
	if leftArm < 0 {
		leftArm = 0
	}
	if rightArm < 0 {
		rightArm = 0
	}
	rate := c.BaselineHomingSuccessRate * leftArm * rightArm
	if adjustedLeft > 0 && adjustedRight > 0 {
		rate *= c.DoubleMismatchPenalty
	}
	return rate
}

// partialHDRRate combines the baseline partial-HDR chance with one
// additional independent chance per offset locus on each side.
func (c *Config) partialHDRRate(adjustedLeft, adjustedRight int) float64 {
	miss := (1 - c.PartialHDRRate) *
		(1 - c.PerOffsetPartialHDRRate*float64(adjustedLeft)) *
		(1 - c.PerOffsetPartialHDRRate*float64(adjustedRight))
	if miss < 0 {
		miss = 0
	}
	return 1 - miss
}
