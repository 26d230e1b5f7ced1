package sim

import "genedrive/pkg/genome"

// DensityFactor is the discrete Beverton-Holt fecundity scaling for the
// given adult count: 1 at capacity, approaching the low-density growth
// rate as the population empties.
func (c *Config) DensityFactor(size int) float64 {
	g := c.LowDensityGrowthRate
	return g / ((g-1)*float64(size)/float64(c.Capacity) + 1)
}

// reproduce runs one female's reproductive opportunity against the adult
// snapshot and returns her accepted offspring. An infertile female, an
// empty male pool, an exhausted mate search, or an infertile accepted mate
// all consume the opportunity with zero offspring.
func reproduce(female *genome.Individual, adults *Snapshot, cfg *Config, rng *Stream) ([]*genome.Individual, error) {
	if !cfg.Fertile(female) {
		return nil, nil
	}

	var mate *genome.Individual
	for attempt := 0; attempt < cfg.MaxMateAttempts; attempt++ {
		candidate := adults.SampleMale(rng)
		if candidate == nil {
			return nil, nil
		}
		if rng.Float64() < cfg.Fitness(candidate) {
			mate = candidate
			break
		}
	}
	if mate == nil || !cfg.Fertile(mate) {
		return nil, nil
	}

	density := cfg.DensityFactor(adults.Size())
	p := cfg.Fitness(female) * density * 2 / float64(cfg.MaxOffspring) / (1 + cfg.RateFemalesSurvive)
	if p > 1 {
		p = 1
	}
	brood := rng.Binomial(cfg.MaxOffspring, p)

	var offspring []*genome.Individual
	for i := 0; i < brood; i++ {
		sex := genome.Female
		if rng.Bool() {
			sex = genome.Male
		}
		child, ok, err := Breed(mate, female, sex, cfg, rng)
		if err != nil {
			return nil, err
		}
		if ok {
			offspring = append(offspring, child)
		}
	}
	return offspring, nil
}
