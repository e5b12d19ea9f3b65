package reconcile

import (
	"fmt"
	"strings"

	"gridiron/internal/catalog"
	"gridiron/internal/logging"
	"gridiron/internal/services"
	"gridiron/internal/textutil"
)

// CorrectionReport describes what a manual correction changed.
type CorrectionReport struct {
	// Applied is the locked assignment now occupying the corrected cell.
	Applied *Assignment
	// Displaced is the assignment that lost the identity to the
	// correction, nil when the identity was unreserved.
	Displaced *Assignment
	// Reassigned is what the displaced cell became after re-resolution,
	// nil when nothing was displaced.
	Reassigned *Assignment
}

// Correct pins a catalog player to a cell. The assignment is locked: the
// override pass and later corrections cannot steal it. A correction may
// displace any unlocked assignment holding the same identity, including an
// exact match, because the operator is looking at the physical board. Two
// corrections claiming the same player conflict instead.
func (e *Engine) Correct(result *Result, coord Coord, entry catalog.Entry) (*CorrectionReport, error) {
	if result == nil || result.Board == nil {
		return nil, services.Wrap(services.ErrValidation, "reconcile", "correct", "result must not be nil", nil)
	}
	board := result.Board
	geometry := board.Geometry()
	if !geometry.Contains(coord.Row, coord.Col) {
		return nil, services.Wrap(services.ErrValidation, "reconcile", "correct",
			fmt.Sprintf("cell %s outside %dx%d board", coord, geometry.Rows, geometry.Cols), nil)
	}
	if _, ok := e.catalog.ByKey(entry.Key()); !ok {
		return nil, services.Wrap(services.ErrValidation, "reconcile", "correct",
			fmt.Sprintf("%s is not in the loaded catalog", entry.DisplayName()), nil)
	}

	key := entry.Key()
	report := &CorrectionReport{}

	if holder, held := board.Holder(key); held && holder != coord {
		holderAssignment, _ := board.Assignment(holder)
		if holderAssignment != nil && holderAssignment.Locked {
			return nil, services.Wrap(services.ErrConflict, "reconcile", "correct",
				fmt.Sprintf("%s is already pinned to cell %s", entry.DisplayName(), holder), nil)
		}
		report.Displaced = board.Remove(holder)
	}

	pick := geometry.PickNumber(coord.Row, coord.Col)
	round, _ := geometry.RoundOf(pick)
	applied := newManualAssignment(coord, pick, round, entry)
	if err := board.Place(applied); err != nil {
		return nil, err
	}
	report.Applied = applied

	if report.Displaced != nil {
		displacedCoord := report.Displaced.Coord()
		if dsel, ok := result.Selection(displacedCoord); ok {
			reassigned := e.resolveCell(board, dsel)
			if err := board.Place(reassigned); err != nil {
				return nil, err
			}
			report.Reassigned = reassigned
		} else {
			logging.WarnWithContext(e.logger, "displaced cell has no recorded observation", "correction_displaced_unknown",
				logging.String(logging.FieldCell, displacedCoord.String()))
		}
	}

	attrs := []logging.Attr{
		logging.String(logging.FieldCell, coord.String()),
		logging.Int(logging.FieldPick, pick),
		logging.String(logging.FieldPlayer, entry.DisplayName()),
	}
	if report.Displaced != nil {
		attrs = append(attrs, logging.String("displaced_cell", report.Displaced.Coord().String()))
	}
	attrs = append(attrs, logging.DecisionAttrs("manual_correction", "applied", "operator pinned the cell")...)
	e.logger.Info("manual correction applied", logging.Args(attrs...)...)
	return report, nil
}

// CorrectText pins free text to a cell for players outside the catalog
// (rookies missing from the cheatsheet, keeper placeholders, joke picks).
// The assignment is locked like a catalog correction but reserves no
// identity, so it can never collide with one.
func (e *Engine) CorrectText(result *Result, coord Coord, text string) (*CorrectionReport, error) {
	if result == nil || result.Board == nil {
		return nil, services.Wrap(services.ErrValidation, "reconcile", "correct", "result must not be nil", nil)
	}
	board := result.Board
	geometry := board.Geometry()
	if !geometry.Contains(coord.Row, coord.Col) {
		return nil, services.Wrap(services.ErrValidation, "reconcile", "correct",
			fmt.Sprintf("cell %s outside %dx%d board", coord, geometry.Rows, geometry.Cols), nil)
	}
	name := textutil.CollapseWhitespace(text)
	if name == "" {
		return nil, services.Wrap(services.ErrValidation, "reconcile", "correct", "correction text must not be empty", nil)
	}

	// Same split convention as catalog display names: one token is a last
	// name, the rest of a multi-token name follows the first token.
	first, last := "", name
	if parts := strings.SplitN(name, " ", 2); len(parts) == 2 {
		first, last = parts[0], parts[1]
	}

	pick := geometry.PickNumber(coord.Row, coord.Col)
	round, _ := geometry.RoundOf(pick)
	applied := newManualTextAssignment(coord, pick, round, first, last)
	if err := board.Place(applied); err != nil {
		return nil, err
	}

	e.logger.Info("manual correction applied",
		logging.Args(append([]logging.Attr{
			logging.String(logging.FieldCell, coord.String()),
			logging.Int(logging.FieldPick, pick),
			logging.String(logging.FieldPlayer, name),
		}, logging.DecisionAttrs("manual_correction", "applied_text", "operator pinned free text")...)...)...)
	return &CorrectionReport{Applied: applied}, nil
}
