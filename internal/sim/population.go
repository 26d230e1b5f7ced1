package sim

import "genedrive/pkg/genome"

// Population is the only entity with cross-generation identity: a mutable
// collection of living individuals with a target capacity. Mutation is
// restricted to seeding, the generation-end Replace barrier, and nothing
// else; reproduction reads immutable snapshots.
type Population struct {
	capacity    int
	individuals []*genome.Individual
}

// NewPopulation constructs an empty population with the given capacity.
func NewPopulation(capacity int) *Population {
	return &Population{capacity: capacity}
}

// Size returns the number of living individuals.
func (p *Population) Size() int {
	return len(p.individuals)
}

// Capacity returns the configured target capacity.
func (p *Population) Capacity() int {
	return p.capacity
}

// Add injects individuals directly, used by initial seeding and the drop
// collaborator.
func (p *Population) Add(inds ...*genome.Individual) {
	p.individuals = append(p.individuals, inds...)
}

// Individuals returns the live slice; callers must treat it as read-only.
func (p *Population) Individuals() []*genome.Individual {
	return p.individuals
}

// Replace swaps in the next generation at the barrier. The previous
// adults become unreachable unless carried over by the caller.
func (p *Population) Replace(next []*genome.Individual) {
	p.individuals = next
}

// Snapshot captures the current adults partitioned by sex. The snapshot is
// immutable: all reproduction decisions for a cycle read only this view,
// and offspring never appear in it.
func (p *Population) Snapshot() *Snapshot {
	s := &Snapshot{size: len(p.individuals)}
	for _, ind := range p.individuals {
		if !ind.Alive {
			s.size--
			continue
		}
		if ind.Sex == genome.Female {
			s.females = append(s.females, ind)
		} else {
			s.males = append(s.males, ind)
		}
	}
	return s
}

// Snapshot is a read-only, sex-partitioned view of the living adults at
// the start of a generation.
type Snapshot struct {
	females []*genome.Individual
	males   []*genome.Individual
	size    int
}

// Size returns the number of living adults in the snapshot.
func (s *Snapshot) Size() int {
	return s.size
}

// Females returns the living females.
func (s *Snapshot) Females() []*genome.Individual {
	return s.females
}

// Males returns the living males.
func (s *Snapshot) Males() []*genome.Individual {
	return s.males
}

// SampleMale draws one male uniformly, or nil when none are alive.
func (s *Snapshot) SampleMale(rng *Stream) *genome.Individual {
	if len(s.males) == 0 {
		return nil
	}
	return s.males[rng.Intn(len(s.males))]
}
