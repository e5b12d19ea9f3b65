package draft

import (
	"math"
	"testing"
)

func TestDensityPeaksAtAlignedRank(t *testing.T) {
	m := NewModel(Board{Rows: 15, Cols: 10}, 0, 0)

	aligned := m.Density(5, 5)
	if aligned != 1.0 {
		t.Fatalf("aligned density = %v, want 1.0", aligned)
	}
	near := m.Density(4, 5)
	far := m.Density(40, 5)
	if near <= far {
		t.Fatalf("expected near rank to outscore far rank: near=%v far=%v", near, far)
	}
	if near >= aligned {
		t.Fatalf("expected aligned rank to dominate: near=%v aligned=%v", near, aligned)
	}
}

func TestDensitySpreadWidensWithRank(t *testing.T) {
	m := NewModel(Board{}, DefaultSigmaBase, DefaultSigmaSlope)

	// Same distance from the pick, but the later-rank candidate sits in a
	// wider distribution and keeps more density.
	early := m.Density(5, 10)
	late := m.Density(100, 105)
	if late <= early {
		t.Fatalf("expected wider spread late: early=%v late=%v", early, late)
	}
}

func TestDensityClampsRank(t *testing.T) {
	m := NewModel(Board{}, 0, 0)
	if got, want := m.Density(0, 1), m.Density(1, 1); got != want {
		t.Fatalf("rank clamp: %v != %v", got, want)
	}
}

func TestDensityUsesConfiguredSigma(t *testing.T) {
	narrow := NewModel(Board{}, 1.0, 0)
	wide := NewModel(Board{}, 10.0, 0)
	if narrow.Density(10, 14) >= wide.Density(10, 14) {
		t.Fatal("expected wider sigma to retain more density off-center")
	}
	if got := NewModel(Board{}, 0, 0).SigmaBase; got != DefaultSigmaBase {
		t.Fatalf("default sigma base = %v", got)
	}
}

func TestPoolContextNormalizesAgainstBestCandidate(t *testing.T) {
	m := NewModel(Board{Rows: 15, Cols: 10}, 0, 0)
	ctx := m.PoolContext(7, []int{3, 7, 50})

	if got := ctx.Relative(7); got != 1.0 {
		t.Fatalf("dominant candidate relative = %v, want 1.0", got)
	}
	mid := ctx.Relative(3)
	low := ctx.Relative(50)
	if mid <= low {
		t.Fatalf("expected rank 3 above rank 50: %v <= %v", mid, low)
	}
	if mid >= 1.0 {
		t.Fatalf("non-dominant candidate should stay below 1.0, got %v", mid)
	}
}

func TestPoolContextSingleCandidateDominates(t *testing.T) {
	// The widening slope keeps a far-off rank's density above zero, so the
	// sole candidate still normalizes to 1.0 instead of underflowing.
	m := NewModel(Board{}, DefaultSigmaBase, DefaultSigmaSlope)
	ctx := m.PoolContext(1, []int{200})
	if got := ctx.Relative(200); math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("sole candidate relative = %v, want 1.0", got)
	}
}

func TestPoolContextEmptyPool(t *testing.T) {
	m := NewModel(Board{}, 0, 0)
	ctx := m.PoolContext(1, nil)
	if got := ctx.Relative(1); got != 0 {
		t.Fatalf("empty pool relative = %v, want 0", got)
	}
}
