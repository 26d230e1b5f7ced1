// Package genome defines the allele-level value types tracked by the
// simulator: per-locus allele states, haploid chromosomes, and diploid
// individuals. All types are plain values; mutation happens only through
// the inheritance pipeline that constructs them.
package genome

// AlleleState identifies the state of a single nuclease target locus on one
// chromosome copy. Exactly one state occupies each locus at all times.
type AlleleState uint8

// Locus states. CutMarker is transient and must never survive past the
// end of a repair pathway; Gap records a locus permanently lost to a
// multi-cut deletion.
const (
	// WildType is the unmodified, cuttable target sequence.
	WildType AlleleState = iota
	// Drive is one locus of the gene-drive cassette.
	Drive
	// R1 is an in-frame resistance allele, functionally benign.
	R1
	// R2 is a disrupted resistance allele (frameshift or deletion).
	R2
	// CutMarker flags a locus cut in the current round, pending repair.
	CutMarker
	// Gap marks a locus lost inside a multi-cut deletion span.
	Gap
)

func (a AlleleState) String() string {
	switch a {
	case WildType:
		return "wt"
	case Drive:
		return "drive"
	case R1:
		return "r1"
	case R2:
		return "r2"
	case CutMarker:
		return "cut"
	case Gap:
		return "gap"
	default:
		return "unknown"
	}
}

// Sex identifies an individual's sex.
type Sex uint8

const (
	// Female individuals create reproductive opportunities.
	Female Sex = iota
	// Male individuals are sampled as mates.
	Male
)

func (s Sex) String() string {
	if s == Male {
		return "male"
	}
	return "female"
}
