package reconcile

import (
	"sort"

	"gridiron/internal/catalog"
	"gridiron/internal/score"
)

// RankedCandidate is one row of a cell's suggestion list: a catalog
// candidate scored against the cell's winning observation. InUse marks
// identities that earlier cells had already reserved when the cell was
// resolved; they stay listed because the list explains the decision, it
// does not constrain it.
type RankedCandidate struct {
	Rank      int             `json:"rank"`
	Name      string          `json:"name"`
	Team      string          `json:"team,omitempty"`
	Position  string          `json:"position"`
	Bye       int             `json:"bye,omitempty"`
	Total     float64         `json:"total"`
	Breakdown score.Breakdown `json:"breakdown"`
	InUse     bool            `json:"in_use,omitempty"`
}

// CellTrace records how one cell was decided: both strategy totals, the
// chosen strategy, and the top-scored candidates at resolution time.
type CellTrace struct {
	Coord         Coord             `json:"coord"`
	Pick          int               `json:"pick"`
	Strategy      score.Strategy    `json:"strategy"`
	Swapped       bool              `json:"swapped,omitempty"`
	TargetedTotal float64           `json:"targeted_total"`
	WholeTotal    float64           `json:"whole_total"`
	Candidates    []RankedCandidate `json:"candidates,omitempty"`
}

// traceCell builds the suggestion list for one cell against the board
// state as it stood before the cell committed. The pool is color-filtered
// but keeps reserved identities, marked, so reviewers can see when the
// obvious pick was already taken.
func (e *Engine) traceCell(board *Board, sel Selection) CellTrace {
	trace := CellTrace{
		Coord:         sel.Coord,
		Pick:          sel.Pick,
		Strategy:      sel.Winner.Strategy,
		Swapped:       sel.Winner.Swapped,
		TargetedTotal: sel.Targeted.Total(),
		WholeTotal:    sel.Whole.Total(),
	}

	obs := sel.Winner.Observation
	if obs.IsEmpty() || e.topN <= 0 {
		return trace
	}

	pool := candidatePool(e.catalog, obs.Color, nil)
	if len(pool) == 0 {
		return trace
	}
	dctx := e.model.PoolContext(sel.Pick, entryRanks(pool))

	scored := make([]RankedCandidate, 0, len(pool))
	for _, entry := range pool {
		breakdown := e.scorer.Score(obs, entry, dctx)
		scored = append(scored, rankedCandidate(entry, breakdown, board.InUse(entry.Key())))
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Total != scored[j].Total {
			return scored[i].Total > scored[j].Total
		}
		return scored[i].Rank < scored[j].Rank
	})
	if len(scored) > e.topN {
		scored = scored[:e.topN]
	}
	trace.Candidates = scored
	return trace
}

func rankedCandidate(entry catalog.Entry, breakdown score.Breakdown, inUse bool) RankedCandidate {
	return RankedCandidate{
		Rank:      entry.Rank,
		Name:      entry.DisplayName(),
		Team:      entry.Team,
		Position:  string(entry.Position),
		Bye:       entry.ByeWeek,
		Total:     breakdown.Total(),
		Breakdown: breakdown,
		InUse:     inUse,
	}
}
