package sim

import (
	"errors"

	"genedrive/pkg/genome"
)

// ErrRedrawExhausted reports that the non-homing gamete re-draw loop ran
// past its configured cap. The loop converges quickly for any valid
// genotype, so hitting the cap indicates a logic fault to surface, not a
// valid simulation outcome.
var ErrRedrawExhausted = errors.New("sim: gamete re-draw loop exceeded its iteration cap")

// Breed runs the full inheritance pipeline for one offspring and returns
// it together with the viability verdict. The pipeline order is
// load-bearing: early germline cutting competes with homing for the same
// wild-type loci, the late round mops up homing's misses, and the embryo
// round acts last using only the mother's nuclease dose. The returned
// chromosomes are final; rejected offspring are discarded by the caller.
func Breed(father, mother *genome.Individual, sex genome.Sex, cfg *Config, rng *Stream) (*genome.Individual, bool, error) {
	paternal := drawGamete(father, rng)
	maternal := drawGamete(mother, rng)

	// A sex-linked drive sits on the X: a male offspring's paternal copy is
	// a Y and never participates in drive mechanics.
	paternalInert := cfg.XLinkedDrive && sex == genome.Male
	if paternalInert {
		paternal.Reset(genome.WildType)
	} else {
		var err error
		paternal, err = cfg.germlinePipeline(paternal, father, true, rng)
		if err != nil {
			return nil, false, err
		}
	}

	if cfg.MaleOnlyPromoter {
		// The mother expresses no nuclease under a male-limited promoter:
		// her copy passes through with only the late mop-up round applied.
		applyGermlineCut(maternal, mother, cfg.LateGermlineResistanceCutRate, cfg, rng)
	} else {
		var err error
		maternal, err = cfg.germlinePipeline(maternal, mother, false, rng)
		if err != nil {
			return nil, false, err
		}
	}

	cfg.embryoCut(paternal, maternal, mother, paternalInert, rng)

	if paternalInert {
		paternal.Reset(genome.WildType)
	}

	if !cfg.viable(paternal, maternal) {
		return nil, false, nil
	}
	return genome.NewIndividual(sex, paternal, maternal), true, nil
}

// drawGamete copies one of the parent's two chromosomes at random.
func drawGamete(parent *genome.Individual, rng *Stream) genome.Chromosome {
	if rng.Bool() {
		return parent.Paternal.Clone()
	}
	return parent.Maternal.Clone()
}

// germlinePipeline applies the transmitting parent's germline steps to one
// gamete copy: early resistance cutting, cassette copying (or the TADS
// re-draw on the paternal copy), then the late near-deterministic round.
func (c *Config) germlinePipeline(ch genome.Chromosome, parent *genome.Individual, paternalCopy bool, rng *Stream) (genome.Chromosome, error) {
	applyGermlineCut(ch, parent, c.GermlineResistanceCutRate, c, rng)
	if c.Homes() {
		if parent.DriveDose() >= 1 && ch.HasWildType() {
			homingRepair(ch, c, rng)
		}
	} else if paternalCopy {
		var err error
		ch, err = c.redrawGamete(ch, parent, rng)
		if err != nil {
			return nil, err
		}
	}
	applyGermlineCut(ch, parent, c.LateGermlineResistanceCutRate, c, rng)
	return ch, nil
}

// applyGermlineCut runs one phased cutting pass driven by the transmitting
// parent's own nuclease. Parents without a complete drive express none.
func applyGermlineCut(ch genome.Chromosome, parent *genome.Individual, rate float64, cfg *Config, rng *Stream) {
	if parent.DriveDose() == 0 {
		return
	}
	rates := cfg.CutRateSchedule(rate, germlinePhases, 1)
	applyCuts(ch, rates, germlinePhases, cfg, rng)
}

// embryoCut applies maternally deposited nuclease to the otherwise
// finalized offspring chromosomes. The dose follows the mother's drive
// copy number; a drive/wild-type heterozygous mother under a homing drive
// deposits the HET_MOTHER_CAS_INHERITANCE dose instead.
func (c *Config) embryoCut(paternal, maternal genome.Chromosome, mother *genome.Individual, paternalInert bool, rng *Stream) {
	dose := mother.DriveDose()
	if dose == 0 {
		return
	}
	d := float64(dose)
	if dose == 1 && c.Homes() && driveWildTypeHet(mother) {
		d = c.HetMotherCasInheritance
	}
	rates := c.CutRateSchedule(c.EmbryoResistanceCutRate, germlinePhases, d)
	if !paternalInert {
		applyCuts(paternal, rates, germlinePhases, c, rng)
	}
	if !c.MaleOnlyPromoter {
		applyCuts(maternal, rates, germlinePhases, c, rng)
	}
}

// driveWildTypeHet reports an individual with exactly one complete-drive
// chromosome whose other copy still carries wild-type loci.
func driveWildTypeHet(ind *genome.Individual) bool {
	if ind.Paternal.IsComplete(genome.Drive) {
		return ind.Maternal.HasWildType()
	}
	if ind.Maternal.IsComplete(genome.Drive) {
		return ind.Paternal.HasWildType()
	}
	return false
}

// redrawGamete implements the non-homing (TADS) transmission bias on the
// paternal copy. An R2-heterozygous father transmits his intact chromosome
// instead; a drive-heterozygous father re-draws R2 gametes, each round
// either promoting the copy to a full cassette or re-copying one of his
// chromosomes and repeating the early germline cut. The loop is bounded by
// the configured cap.
func (c *Config) redrawGamete(ch genome.Chromosome, father *genome.Individual, rng *Stream) (genome.Chromosome, error) {
	ch = substituteR2Copy(ch, father)
	driveHet := father.DriveDose() == 1 && father.R2ChromosomeCount() == 0
	for i := 0; ch.Contains(genome.R2) && driveHet; i++ {
		if i >= c.RedrawCap {
			return nil, ErrRedrawExhausted
		}
		if rng.Float64() < 0.5 {
			ch.Reset(genome.Drive)
			break
		}
		ch = drawGamete(father, rng)
		applyGermlineCut(ch, father, c.GermlineResistanceCutRate, c, rng)
	}
	return ch, nil
}

// substituteR2Copy swaps in the father's other chromosome when he is
// R2-heterozygous and the offspring drew the R2-bearing copy.
func substituteR2Copy(ch genome.Chromosome, father *genome.Individual) genome.Chromosome {
	patR2 := father.Paternal.Contains(genome.R2)
	matR2 := father.Maternal.Contains(genome.R2)
	if patR2 == matR2 || !ch.Contains(genome.R2) {
		return ch
	}
	if patR2 {
		return father.Maternal.Clone()
	}
	return father.Paternal.Clone()
}

// viable is the terminal gate of the pipeline: a haplolethal drive rejects
// any R2, a recessive-lethal drive rejects R2 on both copies.
func (c *Config) viable(paternal, maternal genome.Chromosome) bool {
	patR2 := paternal.Contains(genome.R2)
	matR2 := maternal.Contains(genome.R2)
	if c.HaplolethalDrive && (patR2 || matR2) {
		return false
	}
	if c.RecessiveLethalDrive && patR2 && matR2 {
		return false
	}
	return true
}
