package score

import (
	"testing"

	"gridiron/internal/catalog"
	"gridiron/internal/draft"
)

func testModel() draft.Model {
	return draft.NewModel(draft.Board{Rows: 15, Cols: 10}, 0, 0)
}

func jefferson() catalog.Entry {
	return catalog.Entry{
		Rank:      3,
		FirstName: "Justin",
		LastName:  "Jefferson",
		Team:      "MIN",
		Position:  catalog.PositionWR,
		ByeWeek:   6,
	}
}

func TestScoreStrongObservation(t *testing.T) {
	scorer := NewScorer(Params{PositionPartialCredit: 0.5})
	entry := jefferson()
	obs := Observation{
		Row:          0,
		Col:          2,
		PositionText: "WR",
		LastText:     "Jefforson",
		TeamText:     "MIN",
		ByeText:      "6",
		Color:        &ColorEstimate{Position: catalog.PositionWR, Confidence: 1.0},
		Strategy:     StrategyTargeted,
	}
	dctx := testModel().PoolContext(3, []int{entry.Rank})

	b := scorer.Score(obs, entry, dctx)
	if b.LastName < 35 || b.LastName > MaxLastName {
		t.Fatalf("last-name component = %v, want fuzzy-high", b.LastName)
	}
	if b.FirstName != 0 {
		t.Fatalf("first-name component = %v, want 0 for absent text", b.FirstName)
	}
	if b.Team != MaxTeam {
		t.Fatalf("team component = %v", b.Team)
	}
	if b.Bye != MaxBye {
		t.Fatalf("bye component = %v", b.Bye)
	}
	if b.ColorPosition != MaxColorPosition {
		t.Fatalf("color component = %v", b.ColorPosition)
	}
	if b.TextPosition != MaxTextPosition {
		t.Fatalf("text-position component = %v", b.TextPosition)
	}
	if b.DraftLikelihood != MaxDraftLikelihood {
		t.Fatalf("draft component = %v for aligned sole candidate", b.DraftLikelihood)
	}
	if b.Total() <= 45.0 {
		t.Fatalf("total = %v, want confidently above threshold", b.Total())
	}
}

func TestScoreEmptyObservationIsAllZero(t *testing.T) {
	scorer := NewScorer(Params{})
	dctx := testModel().PoolContext(1, []int{3})

	b := scorer.Score(Observation{}, jefferson(), dctx)
	if !b.IsZero() {
		t.Fatalf("empty observation breakdown = %+v, want all zeros", b)
	}
	if b.Total() != 0 {
		t.Fatalf("empty observation total = %v", b.Total())
	}

	// Partial evidence still scores its own components.
	partial := scorer.Score(Observation{TeamText: "MIN"}, jefferson(), dctx)
	if partial.Team != MaxTeam {
		t.Fatalf("partial observation team component = %v", partial.Team)
	}
}

func TestScoreComponentBounds(t *testing.T) {
	scorer := NewScorer(Params{PositionPartialCredit: 1.0})
	entry := jefferson()
	obs := Observation{
		PositionText: "WR",
		FirstText:    "Justin",
		LastText:     "Jefferson",
		TeamText:     "Minnesota Vikings",
		ByeText:      "6",
		Color:        &ColorEstimate{Position: catalog.PositionWR, Confidence: 1.0},
	}
	dctx := testModel().PoolContext(3, []int{entry.Rank})

	b := scorer.Score(obs, entry, dctx)
	checks := []struct {
		name  string
		value float64
		max   float64
	}{
		{"last", b.LastName, MaxLastName},
		{"first", b.FirstName, MaxFirstName},
		{"team", b.Team, MaxTeam},
		{"bye", b.Bye, MaxBye},
		{"color", b.ColorPosition, MaxColorPosition},
		{"text position", b.TextPosition, MaxTextPosition},
		{"draft", b.DraftLikelihood, MaxDraftLikelihood},
	}
	for _, check := range checks {
		if check.value < 0 || check.value > check.max {
			t.Fatalf("%s component %v outside [0, %v]", check.name, check.value, check.max)
		}
	}
	if b.Total() != MaxTotal {
		t.Fatalf("perfect observation total = %v, want %v", b.Total(), MaxTotal)
	}
}

func TestScoreTeamRequiresExactAbbreviation(t *testing.T) {
	scorer := NewScorer(Params{})
	entry := jefferson()
	dctx := testModel().PoolContext(3, []int{entry.Rank})

	tests := []struct {
		name string
		team string
		want float64
	}{
		{"abbreviation", "MIN", MaxTeam},
		{"lowercase", "min", MaxTeam},
		{"nickname resolves", "Vikings", MaxTeam},
		{"wrong team", "GB", 0},
		{"unresolvable", "Mystery Squad", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := scorer.Score(Observation{TeamText: tt.team}, entry, dctx)
			if b.Team != tt.want {
				t.Fatalf("team component = %v, want %v", b.Team, tt.want)
			}
		})
	}
}

func TestScoreByeParsing(t *testing.T) {
	scorer := NewScorer(Params{})
	entry := jefferson()
	dctx := testModel().PoolContext(3, []int{entry.Rank})

	tests := []struct {
		name string
		bye  string
		want float64
	}{
		{"match", "6", MaxBye},
		{"noisy digits", "[6]", MaxBye},
		{"mismatch", "7", 0},
		{"garbage", "soon", 0},
		{"empty", "", 0},
		{"zero never credits", "0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := scorer.Score(Observation{ByeText: tt.bye}, entry, dctx)
			if b.Bye != tt.want {
				t.Fatalf("bye component = %v, want %v", b.Bye, tt.want)
			}
		})
	}
}

func TestScoreColorConfidenceScaling(t *testing.T) {
	scorer := NewScorer(Params{})
	entry := jefferson()
	dctx := testModel().PoolContext(3, []int{entry.Rank})

	full := scorer.Score(Observation{Color: &ColorEstimate{Position: catalog.PositionWR, Confidence: 1.0}}, entry, dctx)
	if full.ColorPosition != MaxColorPosition {
		t.Fatalf("calibrated tier component = %v", full.ColorPosition)
	}
	fallback := scorer.Score(Observation{Color: &ColorEstimate{Position: catalog.PositionWR, Confidence: 0.5}}, entry, dctx)
	if fallback.ColorPosition != MaxColorPosition/2 {
		t.Fatalf("fallback tier component = %v, want %v", fallback.ColorPosition, MaxColorPosition/2)
	}
	wrong := scorer.Score(Observation{Color: &ColorEstimate{Position: catalog.PositionQB, Confidence: 1.0}}, entry, dctx)
	if wrong.ColorPosition != 0 {
		t.Fatalf("mismatched color component = %v", wrong.ColorPosition)
	}
}

func TestScorePositionTextPartialCredit(t *testing.T) {
	entry := jefferson()
	dctx := testModel().PoolContext(3, []int{entry.Rank})

	with := NewScorer(Params{PositionPartialCredit: 0.5})
	b := with.Score(Observation{PositionText: "WB"}, entry, dctx)
	if b.TextPosition != MaxTextPosition*0.5 {
		t.Fatalf("near-miss component = %v, want %v", b.TextPosition, MaxTextPosition*0.5)
	}

	without := NewScorer(Params{})
	b = without.Score(Observation{PositionText: "WB"}, entry, dctx)
	if b.TextPosition != 0 {
		t.Fatalf("partial credit disabled, component = %v", b.TextPosition)
	}

	b = with.Score(Observation{PositionText: "W/R"}, entry, dctx)
	if b.TextPosition != MaxTextPosition {
		t.Fatalf("cleaned exact match component = %v", b.TextPosition)
	}

	b = with.Score(Observation{PositionText: "K"}, entry, dctx)
	if b.TextPosition != 0 {
		t.Fatalf("distant code component = %v", b.TextPosition)
	}
}

func TestScoreDraftComponentPrefersDominantCandidate(t *testing.T) {
	scorer := NewScorer(Params{})
	aligned := jefferson()
	distant := catalog.Entry{Rank: 80, FirstName: "Late", LastName: "Rounder", Team: "DEN", Position: catalog.PositionWR, ByeWeek: 8}
	dctx := testModel().PoolContext(3, []int{aligned.Rank, distant.Rank})

	alignedScore := scorer.Score(Observation{}, aligned, dctx)
	distantScore := scorer.Score(Observation{}, distant, dctx)
	if alignedScore.DraftLikelihood != MaxDraftLikelihood {
		t.Fatalf("dominant candidate draft component = %v", alignedScore.DraftLikelihood)
	}
	if distantScore.DraftLikelihood >= alignedScore.DraftLikelihood {
		t.Fatalf("distant candidate should trail: %v >= %v", distantScore.DraftLikelihood, alignedScore.DraftLikelihood)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	scorer := NewScorer(Params{PositionPartialCredit: 0.3})
	entry := jefferson()
	obs := Observation{PositionText: "WR", FirstText: "Justin", LastText: "Jeffersen", TeamText: "MIN", ByeText: "6"}
	dctx := testModel().PoolContext(5, []int{3, 12, 40})

	first := scorer.Score(obs, entry, dctx)
	for i := 0; i < 10; i++ {
		if got := scorer.Score(obs, entry, dctx); got != first {
			t.Fatalf("score changed between calls: %+v vs %+v", got, first)
		}
	}
}

func TestSwapNames(t *testing.T) {
	obs := Observation{FirstText: "Jefferson", LastText: "Justin", Strategy: StrategyWhole}
	swapped := obs.SwapNames()
	if swapped.FirstText != "Justin" || swapped.LastText != "Jefferson" {
		t.Fatalf("SwapNames() = %q, %q", swapped.FirstText, swapped.LastText)
	}
	if !swapped.Swapped {
		t.Fatal("expected swap flag set")
	}
	if back := swapped.SwapNames(); back.Swapped {
		t.Fatal("double swap should clear the flag")
	}
}

func TestObservationIsEmpty(t *testing.T) {
	if !(Observation{Row: 3, Col: 2, Strategy: StrategyTargeted}).IsEmpty() {
		t.Fatal("expected empty observation")
	}
	if (Observation{LastText: "x"}).IsEmpty() {
		t.Fatal("expected non-empty observation")
	}
	if (Observation{Color: &ColorEstimate{Position: catalog.PositionK, Confidence: 0.5}}).IsEmpty() {
		t.Fatal("color estimate counts as evidence")
	}
}
