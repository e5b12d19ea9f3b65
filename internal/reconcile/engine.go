package reconcile

import (
	"context"
	"log/slog"

	"gridiron/internal/catalog"
	"gridiron/internal/draft"
	"gridiron/internal/logging"
	"gridiron/internal/score"
	"gridiron/internal/services"
)

// Defaults for engine options left at their zero values.
const (
	// DefaultThreshold is the minimum breakdown total a candidate needs
	// before a cell commits to it.
	DefaultThreshold = 45.0
	// DefaultTopCandidates is how many scored suggestions each cell trace
	// keeps.
	DefaultTopCandidates = 3
)

// Options tune an Engine. Zero values select the defaults.
type Options struct {
	// Threshold is the minimum acceptance score for catalog assignments.
	Threshold float64
	// TopCandidates caps each cell's suggestion trace.
	TopCandidates int
	// Workers bounds the selection phase's parallelism; zero means one
	// worker per CPU.
	Workers int
}

// Engine reconciles cell observations against a catalog. It is immutable
// after construction and safe for concurrent use; all run state lives in
// the Result.
type Engine struct {
	catalog   *catalog.Catalog
	model     draft.Model
	scorer    *score.Scorer
	threshold float64
	topN      int
	workers   int
	logger    *slog.Logger
}

// New builds an Engine over a loaded catalog and draft model.
func New(cat *catalog.Catalog, model draft.Model, scorer *score.Scorer, opts Options, logger *slog.Logger) (*Engine, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, services.Wrap(services.ErrValidation, "reconcile", "new", "catalog must not be empty", nil)
	}
	if model.Board.Cells() == 0 {
		return nil, services.Wrap(services.ErrValidation, "reconcile", "new", "board geometry must not be empty", nil)
	}
	if scorer == nil {
		scorer = score.NewScorer(score.Params{})
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	topN := opts.TopCandidates
	if topN <= 0 {
		topN = DefaultTopCandidates
	}
	return &Engine{
		catalog:   cat,
		model:     model,
		scorer:    scorer,
		threshold: threshold,
		topN:      topN,
		workers:   opts.Workers,
		logger:    logging.NewComponentLogger(logger, "reconcile"),
	}, nil
}

// Threshold returns the engine's acceptance threshold.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// Catalog returns the engine's loaded catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Result is one reconciliation run: the settled board plus the per-cell
// selections and traces that explain it.
type Result struct {
	Board      *Board
	Selections []Selection
	Traces     []CellTrace

	selectionIndex map[Coord]int
}

// Selection returns the recorded strategy competition for a cell.
func (r *Result) Selection(coord Coord) (Selection, bool) {
	idx, ok := r.selectionIndex[coord]
	if !ok {
		return Selection{}, false
	}
	return r.Selections[idx], true
}

// Trace returns the recorded suggestion trace for a cell.
func (r *Result) Trace(coord Coord) (CellTrace, bool) {
	for _, trace := range r.Traces {
		if trace.Coord == coord {
			return trace, true
		}
	}
	return CellTrace{}, false
}

// Assignments returns the board's assignments in row-major order.
func (r *Result) Assignments() []*Assignment {
	return r.Board.Assignments()
}

// Stats summarizes a result for logs and CLI output.
type Stats struct {
	Cells    int
	Catalog  int
	Exact    int
	Manual   int
	RawText  int
	Unnamed  int
	MeanConf float64
}

// Stats tallies the result's assignments. The mean covers scored catalog
// assignments only; manual pins carry no breakdown and would drag it down.
func (r *Result) Stats() Stats {
	stats := Stats{}
	var confSum float64
	var scored int
	for _, a := range r.Assignments() {
		stats.Cells++
		switch a.Source {
		case SourceCatalog:
			stats.Catalog++
			switch a.Match {
			case MatchExact:
				stats.Exact++
			case MatchManual:
				stats.Manual++
			}
			if a.Match != MatchManual {
				confSum += a.Total()
				scored++
			}
		case SourceRawText:
			stats.RawText++
			if a.DisplayName() == "" {
				stats.Unnamed++
			}
		}
	}
	if scored > 0 {
		stats.MeanConf = confSum / float64(scored)
	}
	return stats
}

// Reconcile runs the three passes over the inputs and returns the settled
// board. Inputs may arrive in any order and may cover only part of the
// grid; cells without input are simply absent from the result.
func (e *Engine) Reconcile(ctx context.Context, inputs []CellInput) (*Result, error) {
	normalized, err := normalizeInputs(e.model.Board, inputs)
	if err != nil {
		return nil, err
	}

	selections := e.selectAll(normalized)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	board := NewBoard(e.model.Board)
	traces := make([]CellTrace, 0, len(selections))
	for _, sel := range selections {
		traces = append(traces, e.traceCell(board, sel))
		if err := board.Place(e.resolveCell(board, sel)); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := e.applyOverrides(board, selections); err != nil {
		return nil, err
	}

	result := newResult(board, selections, traces)
	stats := result.Stats()
	e.logger.Info("reconciliation complete",
		logging.Args(
			logging.Int("cells", stats.Cells),
			logging.Int("catalog", stats.Catalog),
			logging.Int("exact", stats.Exact),
			logging.Int("raw_text", stats.RawText),
			logging.Float64("mean_score", stats.MeanConf),
			logging.String(logging.FieldEventType, "reconcile_complete"),
		)...)
	return result, nil
}

func newResult(board *Board, selections []Selection, traces []CellTrace) *Result {
	index := make(map[Coord]int, len(selections))
	for i, sel := range selections {
		index[sel.Coord] = i
	}
	return &Result{
		Board:          board,
		Selections:     selections,
		Traces:         traces,
		selectionIndex: index,
	}
}

// RestoreResult rebuilds a Result from persisted assignments and
// selections, re-establishing the reservation bookkeeping. Used when a
// stored session is reopened for corrections or export. Serialized
// assignments do not carry the identity key, so catalog-backed cells get
// theirs rebuilt from the stored entry fields before placement.
func RestoreResult(geometry draft.Board, assignments []*Assignment, selections []Selection, traces []CellTrace) (*Result, error) {
	board := NewBoard(geometry)
	for _, a := range assignments {
		if a.Source == SourceCatalog && a.Key.IsZero() {
			a.Key = catalog.Entry{
				FirstName: a.FirstName,
				LastName:  a.LastName,
				Team:      a.Team,
				Position:  catalog.Position(a.Position),
				ByeWeek:   a.Bye,
			}.Key()
		}
		if err := board.Place(a); err != nil {
			return nil, err
		}
	}
	return newResult(board, selections, traces), nil
}
