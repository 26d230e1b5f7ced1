package genome

// Chromosome is one haploid copy: an ordered vector with one AlleleState
// per nuclease target locus. Every write replaces the slot; there is no
// stacking of states at a locus.
type Chromosome []AlleleState

// NewWildType returns a chromosome of n wild-type loci.
func NewWildType(n int) Chromosome {
	return make(Chromosome, n)
}

// NewUniform returns a chromosome with state at every locus.
func NewUniform(n int, state AlleleState) Chromosome {
	c := make(Chromosome, n)
	for i := range c {
		c[i] = state
	}
	return c
}

// Clone returns an independent copy.
func (c Chromosome) Clone() Chromosome {
	cp := make(Chromosome, len(c))
	copy(cp, c)
	return cp
}

// CopyFrom overwrites every locus with the states of src. Writes are
// set-once slot replacements, so copying an identical source is a no-op.
func (c Chromosome) CopyFrom(src Chromosome) {
	copy(c, src)
}

// IsComplete reports whether state occupies all loci simultaneously.
func (c Chromosome) IsComplete(state AlleleState) bool {
	if len(c) == 0 {
		return false
	}
	for _, a := range c {
		if a != state {
			return false
		}
	}
	return true
}

// Contains reports whether any locus holds state.
func (c Chromosome) Contains(state AlleleState) bool {
	for _, a := range c {
		if a == state {
			return true
		}
	}
	return false
}

// Count returns the number of loci holding state.
func (c Chromosome) Count(state AlleleState) int {
	n := 0
	for _, a := range c {
		if a == state {
			n++
		}
	}
	return n
}

// WildTypeLoci returns the indices still in the wild-type state, ascending.
func (c Chromosome) WildTypeLoci() []int {
	var loci []int
	for i, a := range c {
		if a == WildType {
			loci = append(loci, i)
		}
	}
	return loci
}

// HasWildType reports whether at least one locus remains wild type.
func (c Chromosome) HasWildType() bool {
	return c.Contains(WildType)
}

// Reset forces every locus to state.
func (c Chromosome) Reset(state AlleleState) {
	for i := range c {
		c[i] = state
	}
}
