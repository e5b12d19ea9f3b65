package reconcile

import (
	"gridiron/internal/catalog"
	"gridiron/internal/logging"
	"gridiron/internal/score"
)

// Override decision results, logged as decision_result.
const (
	overrideUpgraded   = "upgraded"
	overrideAssigned   = "assigned"
	overrideStolen     = "stolen"
	overrideKept       = "kept"
	overrideReassigned = "reassigned"
)

// applyOverrides runs the exact last-name pass over every cell in board
// order. Each steal updates the reservation set before the next cell is
// examined, and displaced cells are re-resolved on the spot, so one sweep
// settles the board.
func (e *Engine) applyOverrides(board *Board, selections []Selection) error {
	byCoord := make(map[Coord]Selection, len(selections))
	for _, sel := range selections {
		byCoord[sel.Coord] = sel
	}
	for _, sel := range selections {
		if err := e.applyOverride(board, sel, byCoord); err != nil {
			return err
		}
	}
	return nil
}

// applyOverride honors an exact last-name match for one cell. The match
// must be literal after normalization; fuzzy closeness never qualifies.
// The chosen identity is taken from a weaker standard assignment when
// necessary, but locked, manual, and other exact assignments hold their
// ground.
func (e *Engine) applyOverride(board *Board, sel Selection, byCoord map[Coord]Selection) error {
	obs := sel.Winner.Observation
	normalizedLast := catalog.NormalizeName(obs.LastText)
	if normalizedLast == "" {
		return nil
	}
	candidates := exactCandidates(e.catalog, normalizedLast, obs.Color)
	if len(candidates) == 0 {
		return nil
	}

	// Breakdowns use the same full color-filtered pool context as the
	// selection phase; exact and standard totals stay comparable.
	dctx := e.model.PoolContext(sel.Pick, entryRanks(candidatePool(e.catalog, obs.Color, nil)))
	entry, breakdown, ok := e.bestEntry(obs, candidates, dctx)
	if !ok {
		return nil
	}
	key := entry.Key()

	if current, exists := board.Assignment(sel.Coord); exists && current.Key == key {
		if current.Match != MatchExact && !current.Locked {
			current.Match = MatchExact
			e.logOverride(sel, entry, overrideUpgraded, "cell already held the exact-match identity")
		}
		return nil
	}

	holder, held := board.Holder(key)
	if !held {
		if err := board.Place(newCatalogAssignment(sel, entry, MatchExact, breakdown)); err != nil {
			return err
		}
		e.logOverride(sel, entry, overrideAssigned, "exact-match identity was unreserved")
		return nil
	}

	holderAssignment, _ := board.Assignment(holder)
	if holderAssignment == nil || !holderAssignment.Stealable() {
		e.logOverride(sel, entry, overrideKept, "exact-match identity held by a protected assignment")
		return nil
	}

	board.Remove(holder)
	if err := board.Place(newCatalogAssignment(sel, entry, MatchExact, breakdown)); err != nil {
		return err
	}
	e.logOverride(sel, entry, overrideStolen, "exact match outranks a standard assignment")

	displacedSel, known := byCoord[holder]
	if !known {
		logging.WarnWithContext(e.logger, "displaced cell has no recorded observation", "override_displaced_unknown",
			logging.String(logging.FieldCell, holder.String()))
		return nil
	}
	reassigned := e.resolveCell(board, displacedSel)
	if err := board.Place(reassigned); err != nil {
		return err
	}
	e.logger.Debug("displaced cell re-resolved",
		logging.Args(append([]logging.Attr{
			logging.String(logging.FieldCell, holder.String()),
			logging.String(logging.FieldPlayer, reassigned.DisplayName()),
			logging.String("source", string(reassigned.Source)),
		}, logging.DecisionAttrs("exact_override", overrideReassigned, "cell lost its identity to an exact match")...)...)...)
	return nil
}

// exactCandidates returns catalog entries whose normalized last name is a
// literal match, restricted to the color position when one is present.
func exactCandidates(cat *catalog.Catalog, normalizedLast string, color *score.ColorEstimate) []catalog.Entry {
	matches := cat.ExactLast(normalizedLast)
	if color == nil {
		return matches
	}
	out := make([]catalog.Entry, 0, len(matches))
	for _, entry := range matches {
		if entry.Position == color.Position {
			out = append(out, entry)
		}
	}
	return out
}

func (e *Engine) logOverride(sel Selection, entry catalog.Entry, result, reason string) {
	level := e.logger.Debug
	if result == overrideStolen {
		level = e.logger.Info
	}
	level("exact last-name override",
		logging.Args(append([]logging.Attr{
			logging.String(logging.FieldCell, sel.Coord.String()),
			logging.Int(logging.FieldPick, sel.Pick),
			logging.String(logging.FieldPlayer, entry.DisplayName()),
		}, logging.DecisionAttrs("exact_override", result, reason)...)...)...)
}
