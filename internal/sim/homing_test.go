package sim

import (
	"math"
	"testing"

	"genedrive/pkg/genome"
)

func TestHomingSuccessRate(t *testing.T) {
	cfg := defaultConfig()
	cfg.BaselineHomingSuccessRate = 0.8
	cfg.HomingEdgeEffect = 0.1
	cfg.DoubleMismatchPenalty = 0.5

	cases := []struct {
		name        string
		left, right int
		want        float64
	}{
		{"flush span", 0, 0, 0.8},
		{"left offset only", 2, 0, 0.8 * 0.8},
		{"right offset only", 0, 3, 0.8 * 0.7},
		{"both offsets penalized", 1, 1, 0.8 * 0.9 * 0.9 * 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cfg.homingSuccessRate(tc.left, tc.right)
			if math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("homingSuccessRate(%d, %d) = %v, want %v", tc.left, tc.right, got, tc.want)
			}
		})
	}
}

func TestHomingSuccessRateClampsArms(t *testing.T) {
	cfg := defaultConfig()
	cfg.HomingEdgeEffect = 1
	if got := cfg.homingSuccessRate(5, 0); got != 0 {
		t.Fatalf("oversized offset must clamp to zero, got %v", got)
	}
}

func TestPartialHDRRate(t *testing.T) {
	cfg := defaultConfig()
	cfg.PartialHDRRate = 0.1
	cfg.PerOffsetPartialHDRRate = 0.2

	if got := cfg.partialHDRRate(0, 0); math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("flush span rate = %v, want the baseline 0.1", got)
	}
	want := 1 - 0.9*(1-0.2*2)*(1-0.2*1)
	if got := cfg.partialHDRRate(2, 1); math.Abs(got-want) > 1e-12 {
		t.Fatalf("offset rate = %v, want %v", got, want)
	}
	if got := cfg.partialHDRRate(10, 10); got != 1 {
		t.Fatalf("oversized offsets must clamp the miss product, got %v", got)
	}
}

func TestHomingRepairCertainSuccess(t *testing.T) {
	cfg := defaultConfig()
	cfg.HomingPhaseCutRate = 1
	cfg.BaselineHomingSuccessRate = 1
	ch := genome.NewWildType(cfg.NumGRNAs)
	homingRepair(ch, cfg, NewStream(1))
	if !ch.IsComplete(genome.Drive) {
		t.Fatalf("certain homing must write the full cassette, got %v", ch)
	}
}

func TestHomingRepairNoCutNoOp(t *testing.T) {
	cfg := defaultConfig()
	cfg.HomingPhaseCutRate = 0
	ch := genome.NewWildType(cfg.NumGRNAs)
	homingRepair(ch, cfg, NewStream(1))
	if !ch.IsComplete(genome.WildType) {
		t.Fatalf("no cut must leave the chromosome untouched, got %v", ch)
	}
}

func TestHomingRepairPartialHDROutcome(t *testing.T) {
	cases := []struct {
		name   string
		haplo  bool
		r1Rate float64
		want   genome.AlleleState
	}{
		{"modification drive converts to r2", false, 1, genome.R2},
		{"haplolethal drive can convert to r1", true, 1, genome.R1},
		{"haplolethal without r1 draw converts to r2", true, 0, genome.R2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.HomingPhaseCutRate = 1
			cfg.BaselineHomingSuccessRate = 0
			cfg.PartialHDRRate = 1
			cfg.PartialHDRR1Rate = tc.r1Rate
			cfg.HaplolethalDrive = tc.haplo
			ch := genome.NewWildType(cfg.NumGRNAs)
			homingRepair(ch, cfg, NewStream(1))
			if !ch.IsComplete(tc.want) {
				t.Fatalf("got %v, want complete %v", ch, tc.want)
			}
		})
	}
}

func TestHomingRepairFallbackClassifiesCuts(t *testing.T) {
	cfg := defaultConfig()
	cfg.HomingPhaseCutRate = 1
	cfg.BaselineHomingSuccessRate = 0
	cfg.PartialHDRRate = 0
	cfg.PerOffsetPartialHDRRate = 0
	ch := genome.NewWildType(cfg.NumGRNAs)
	homingRepair(ch, cfg, NewStream(1))

	want := genome.Chromosome{genome.R2, genome.Gap, genome.Gap, genome.WildType}
	for i := range want {
		if ch[i] != want[i] {
			t.Fatalf("locus %d = %v, want %v (chromosome %v)", i, ch[i], want[i], ch)
		}
	}
}

func TestHomingRepairAbsorbsAdjoiningGaps(t *testing.T) {
	// The leading gap extends the cut span to the chromosome edge, so the
	// left arm carries no offset and certain homing still succeeds.
	cfg := defaultConfig()
	cfg.HomingPhaseCutRate = 1
	cfg.BaselineHomingSuccessRate = 1
	cfg.HomingEdgeEffect = 1
	ch := genome.Chromosome{genome.Gap, genome.WildType, genome.WildType, genome.WildType}
	homingRepair(ch, cfg, NewStream(1))
	if !ch.IsComplete(genome.Drive) {
		t.Fatalf("gap-extended span must reach the edge, got %v", ch)
	}
}

func TestHomingRepairEdgeOffsetBlocksSuccess(t *testing.T) {
	// An R1 locus does not extend the span, so the left arm sits one locus
	// in and a full-strength edge effect zeroes the success rate.
	cfg := defaultConfig()
	cfg.HomingPhaseCutRate = 1
	cfg.BaselineHomingSuccessRate = 1
	cfg.HomingEdgeEffect = 1
	cfg.PartialHDRRate = 0
	cfg.PerOffsetPartialHDRRate = 1
	ch := genome.Chromosome{genome.R1, genome.WildType, genome.WildType, genome.WildType}
	homingRepair(ch, cfg, NewStream(1))
	if !ch.IsComplete(genome.R2) {
		t.Fatalf("offset span must fail homing and take the partial path, got %v", ch)
	}
}
