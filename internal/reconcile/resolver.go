package reconcile

import (
	"gridiron/internal/catalog"
	"gridiron/internal/draft"
	"gridiron/internal/logging"
	"gridiron/internal/score"
)

// candidatePool returns catalog entries eligible for an observation, in
// rank order. A color estimate restricts the pool to its position; any
// board passed in restricts it further to unreserved identities. A nil
// board means no reservation filtering, which is how the selection phase
// and the suggestion trace see the whole catalog.
func candidatePool(cat *catalog.Catalog, color *score.ColorEstimate, board *Board) []catalog.Entry {
	entries := cat.Entries()
	out := make([]catalog.Entry, 0, len(entries))
	for _, entry := range entries {
		if color != nil && entry.Position != color.Position {
			continue
		}
		if board != nil && board.InUse(entry.Key()) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func entryRanks(pool []catalog.Entry) []int {
	ranks := make([]int, len(pool))
	for i, entry := range pool {
		ranks[i] = entry.Rank
	}
	return ranks
}

// bestEntry scores the observation against each candidate under the given
// draft context and returns the single best one. Ties keep the earlier
// entry, which in rank order is the better-ranked player, so the result
// is deterministic.
func (e *Engine) bestEntry(obs score.Observation, candidates []catalog.Entry, dctx draft.Context) (catalog.Entry, score.Breakdown, bool) {
	if len(candidates) == 0 {
		return catalog.Entry{}, score.Breakdown{}, false
	}
	best := candidates[0]
	bestBreakdown := e.scorer.Score(obs, best, dctx)
	for _, entry := range candidates[1:] {
		breakdown := e.scorer.Score(obs, entry, dctx)
		if breakdown.Total() > bestBreakdown.Total() {
			best = entry
			bestBreakdown = breakdown
		}
	}
	return best, bestBreakdown, true
}

// resolveCell commits one cell against the current board state. The
// winning observation is re-scored against the pool that remains after
// earlier cells reserved their identities, so selection-time scores can
// only shrink here. The cell becomes a standard catalog assignment when
// the best remaining candidate clears the threshold and a raw-text
// fallback otherwise, with the rejected best breakdown kept for review.
//
// This is the only path that assigns displaced cells, and it never
// produces an exact match tag, so an override steal cannot cascade into
// further steals.
func (e *Engine) resolveCell(board *Board, sel Selection) *Assignment {
	obs := sel.Winner.Observation
	if obs.IsEmpty() {
		return newRawTextAssignment(sel, score.Breakdown{})
	}

	pool := candidatePool(e.catalog, obs.Color, board)
	dctx := e.model.PoolContext(sel.Pick, entryRanks(pool))
	entry, breakdown, ok := e.bestEntry(obs, pool, dctx)
	if !ok {
		return newRawTextAssignment(sel, score.Breakdown{})
	}
	if breakdown.Total() >= e.threshold {
		return newCatalogAssignment(sel, entry, MatchStandard, breakdown)
	}

	e.logger.Debug("no candidate cleared threshold",
		logging.Args(
			logging.String(logging.FieldCell, sel.Coord.String()),
			logging.Int(logging.FieldPick, sel.Pick),
			logging.String(logging.FieldPlayer, entry.DisplayName()),
			logging.Float64(logging.FieldScore, breakdown.Total()),
			logging.Float64("threshold", e.threshold),
			logging.String(logging.FieldEventType, "raw_text_fallback"),
		)...)
	return newRawTextAssignment(sel, breakdown)
}
