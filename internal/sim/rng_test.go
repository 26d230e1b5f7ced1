package sim

import "testing"

func TestStreamRecordsSeed(t *testing.T) {
	s := NewStream(42)
	if s.Seed() != 42 {
		t.Fatalf("Seed() = %d, want 42", s.Seed())
	}
	if NewStream(0).Seed() == 0 {
		t.Fatalf("seed 0 must be replaced by a recorded time-based seed")
	}
}

func TestStreamReplay(t *testing.T) {
	a, b := NewStream(7), NewStream(7)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("streams with equal seeds diverged at draw %d", i)
		}
	}
}

func TestBinomialBounds(t *testing.T) {
	s := NewStream(1)
	cases := []struct {
		n    int
		p    float64
		want int // -1 means any value in [0,n]
	}{
		{50, 0, 0},
		{50, -0.5, 0},
		{0, 0.5, 0},
		{50, 1, 50},
		{50, 1.5, 50},
		{50, 0.5, -1},
	}
	for _, tc := range cases {
		got := s.Binomial(tc.n, tc.p)
		if tc.want >= 0 {
			if got != tc.want {
				t.Fatalf("Binomial(%d, %v) = %d, want %d", tc.n, tc.p, got, tc.want)
			}
			continue
		}
		if got < 0 || got > tc.n {
			t.Fatalf("Binomial(%d, %v) = %d, out of range", tc.n, tc.p, got)
		}
	}
}

func TestForkDeterministic(t *testing.T) {
	parent := NewStream(99)
	c1 := parent.Fork(3)
	c2 := NewStream(99).Fork(3)
	if c1.Seed() != c2.Seed() {
		t.Fatalf("fork seeds differ: %d vs %d", c1.Seed(), c2.Seed())
	}
	for i := 0; i < 50; i++ {
		if c1.Float64() != c2.Float64() {
			t.Fatalf("forked streams diverged at draw %d", i)
		}
	}
	if parent.Fork(0).Seed() == parent.Fork(1).Seed() {
		t.Fatalf("distinct fork ids produced identical child seeds")
	}
}
