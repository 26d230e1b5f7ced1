package genome

// Individual is one diploid member of the population. Chromosomes are
// created once at birth by the inheritance pipeline and are immutable
// afterwards except through seeding.
type Individual struct {
	Sex          Sex
	Age          int
	Paternal     Chromosome // copy inherited from the father
	Maternal     Chromosome // copy inherited from the mother
	FitnessScale float64    // extra per-individual scaling, 1 by default
	Alive        bool
}

// NewIndividual constructs a live, age-zero individual from two finalized
// chromosome copies.
func NewIndividual(sex Sex, paternal, maternal Chromosome) *Individual {
	return &Individual{
		Sex:          sex,
		Paternal:     paternal,
		Maternal:     maternal,
		FitnessScale: 1,
		Alive:        true,
	}
}

// Chromosomes returns both copies, paternal first.
func (ind *Individual) Chromosomes() [2]Chromosome {
	return [2]Chromosome{ind.Paternal, ind.Maternal}
}

// DriveDose counts the complete-drive chromosomes (0, 1 or 2). A copy only
// counts when the cassette occupies every locus.
func (ind *Individual) DriveDose() int {
	dose := 0
	if ind.Paternal.IsComplete(Drive) {
		dose++
	}
	if ind.Maternal.IsComplete(Drive) {
		dose++
	}
	return dose
}

// R2ChromosomeCount counts the chromosomes carrying at least one disrupted
// resistance allele. A single R2 locus loses the target gene's function.
func (ind *Individual) R2ChromosomeCount() int {
	n := 0
	if ind.Paternal.Contains(R2) {
		n++
	}
	if ind.Maternal.Contains(R2) {
		n++
	}
	return n
}

// CarriesDrive reports whether any locus on either chromosome holds a
// drive allele.
func (ind *Individual) CarriesDrive() bool {
	return ind.Paternal.Contains(Drive) || ind.Maternal.Contains(Drive)
}

// Clone returns a deep copy.
func (ind *Individual) Clone() *Individual {
	cp := *ind
	cp.Paternal = ind.Paternal.Clone()
	cp.Maternal = ind.Maternal.Clone()
	return &cp
}
