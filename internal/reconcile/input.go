package reconcile

import (
	"fmt"
	"sort"

	"gridiron/internal/draft"
	"gridiron/internal/score"
	"gridiron/internal/services"
)

// CellInput is one cell's extraction output: the per-region targeted pass
// and the whole-cell segmentation pass. Either observation may be empty.
type CellInput struct {
	Row      int
	Col      int
	Targeted score.Observation
	Whole    score.Observation
}

// Coord returns the input's cell coordinate.
func (in CellInput) Coord() Coord {
	return Coord{Row: in.Row, Col: in.Col}
}

// normalizeInputs validates coordinates against the board geometry,
// rejects duplicates, stamps the strategy tags, and orders cells row-major
// for the sequential passes.
func normalizeInputs(geometry draft.Board, inputs []CellInput) ([]CellInput, error) {
	out := make([]CellInput, len(inputs))
	copy(out, inputs)

	seen := make(map[Coord]struct{}, len(out))
	for i := range out {
		coord := out[i].Coord()
		if !geometry.Contains(coord.Row, coord.Col) {
			return nil, services.Wrap(services.ErrValidation, "reconcile", "inputs",
				fmt.Sprintf("cell %s outside %dx%d board", coord, geometry.Rows, geometry.Cols), nil)
		}
		if _, dup := seen[coord]; dup {
			return nil, services.Wrap(services.ErrValidation, "reconcile", "inputs",
				fmt.Sprintf("duplicate input for cell %s", coord), nil)
		}
		seen[coord] = struct{}{}

		out[i].Targeted.Row = coord.Row
		out[i].Targeted.Col = coord.Col
		out[i].Targeted.Strategy = score.StrategyTargeted
		out[i].Whole.Row = coord.Row
		out[i].Whole.Col = coord.Col
		out[i].Whole.Strategy = score.StrategyWhole
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Coord().Less(out[j].Coord())
	})
	return out, nil
}
