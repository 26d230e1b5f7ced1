package sim

import (
	"math/rand"
	"time"
)

// Stream is a reproducibly seeded source for every stochastic draw the
// simulation makes: uniform variates, bounded integers, and binomial
// counts. Each worker holds its own forked stream, so no draw on one
// stream can perturb another.
type Stream struct {
	rng  *rand.Rand
	seed int64
}

// NewStream constructs a stream from seed. Seed 0 selects a time-based
// seed; callers that need replay should record Seed().
func NewStream(seed int64) *Stream {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Stream{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the seed the stream was constructed with.
func (s *Stream) Seed() int64 {
	return s.seed
}

// Float64 draws a uniform variate in [0,1).
func (s *Stream) Float64() float64 {
	return s.rng.Float64()
}

// Intn draws a uniform integer in [0,n).
func (s *Stream) Intn(n int) int {
	return s.rng.Intn(n)
}

// Bool draws a fair coin.
func (s *Stream) Bool() bool {
	return s.rng.Int63()&1 == 0
}

// Binomial draws from Binomial(n, p). The n used by the engine is the
// per-female brood cap, so the direct Bernoulli sum is exact and cheap.
func (s *Stream) Binomial(n int, p float64) int {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}
	k := 0
	for i := 0; i < n; i++ {
		if s.rng.Float64() < p {
			k++
		}
	}
	return k
}

// Fork derives an independent child stream. The mapping from (parent seed,
// id) to child seed is fixed, so forked streams replay deterministically.
func (s *Stream) Fork(id int64) *Stream {
	child := s.seed ^ int64(uint64(id+1)*0x9e3779b97f4a7c15)
	if child == 0 {
		child = 1
	}
	return &Stream{rng: rand.New(rand.NewSource(child)), seed: child}
}
