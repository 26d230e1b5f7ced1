package sim

import "genedrive/pkg/genome"

// applyCuts runs the phased stochastic cutting rounds on one chromosome
// copy. Each round draws one uniform sample per remaining wild-type locus
// against its scheduled rate and marks hits; the round then resolves its
// markers: a single cut forms a resistance allele, concurrent cuts
// collapse into one deletion spanning the extreme cut loci. No marker
// survives a round. A chromosome without wild-type loci is left untouched.
func applyCuts(ch genome.Chromosome, rates []float64, phases int, cfg *Config, rng *Stream) {
	for phase := 0; phase < phases; phase++ {
		if !ch.HasWildType() {
			return
		}
		for _, locus := range ch.WildTypeLoci() {
			if rng.Float64() < rates[locus] {
				ch[locus] = genome.CutMarker
			}
		}
		resolveCutRound(ch, cfg, rng)
	}
}

// resolveCutRound repairs every marker placed in the current round.
func resolveCutRound(ch genome.Chromosome, cfg *Config, rng *Stream) {
	var cut []int
	for i, a := range ch {
		if a == genome.CutMarker {
			cut = append(cut, i)
		}
	}
	classifyCutLoci(ch, cut, cfg, rng)
}

// classifyCutLoci applies the single-cut / multi-cut repair rule to the
// given cut loci: one cut delegates to resistance-allele formation, two or
// more model a single large deletion — the leftmost locus keeps a
// disrupted R2 junction and every locus strictly between the extremes is
// lost. The rightmost locus reverts to wild type when its marker clears.
func classifyCutLoci(ch genome.Chromosome, cut []int, cfg *Config, rng *Stream) {
	switch len(cut) {
	case 0:
	case 1:
		ch[cut[0]] = cfg.resistanceAllele(rng)
	default:
		leftmost, rightmost := cut[0], cut[len(cut)-1]
		ch[leftmost] = genome.R2
		for i := leftmost + 1; i < rightmost; i++ {
			ch[i] = genome.Gap
		}
		if ch[rightmost] == genome.CutMarker {
			ch[rightmost] = genome.WildType
		}
	}
}
