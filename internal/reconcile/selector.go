package reconcile

import (
	"fmt"
	"runtime"
	"sync"

	"gridiron/internal/catalog"
	"gridiron/internal/logging"
	"gridiron/internal/score"
)

// StrategyResult is the outcome of scoring one extraction strategy for one
// cell: the observation as scored, the best full-pool candidate, and its
// breakdown. HasCandidate is false when the observation was empty or the
// pool had no eligible entries.
type StrategyResult struct {
	Strategy     score.Strategy
	Swapped      bool
	Observation  score.Observation
	Candidate    catalog.Entry
	HasCandidate bool
	Breakdown    score.Breakdown
}

// Total is the result's best candidate score; zero without a candidate.
func (r StrategyResult) Total() float64 {
	if !r.HasCandidate {
		return 0
	}
	return r.Breakdown.Total()
}

// Selection is the per-cell winner of the strategy competition along with
// both competitors, kept for tracing and persistence.
type Selection struct {
	Coord    Coord
	Pick     int
	Round    int
	Targeted StrategyResult
	Whole    StrategyResult
	Winner   StrategyResult
}

// selectAll runs the strategy competition for every cell. Cells are
// independent here: each scores against the full color-filtered catalog
// with no reservations, so the work fans out across a bounded worker pool
// and the result order matches the input order.
func (e *Engine) selectAll(inputs []CellInput) []Selection {
	results := make([]Selection, len(inputs))
	if len(inputs) == 0 {
		return results
	}

	workers := e.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = e.selectCell(inputs[idx])
			}
		}()
	}
	for idx := range inputs {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	for i := range results {
		e.logSelection(results[i])
	}
	return results
}

// selectCell scores the targeted pass, the whole-cell pass, and the
// whole-cell pass with its name fields swapped. The swap replaces the
// plain whole-cell result only when strictly better, and the whole-cell
// winner replaces the targeted result only when strictly better, so ties
// always keep the more literal reading.
func (e *Engine) selectCell(input CellInput) Selection {
	coord := input.Coord()
	pick := e.model.Board.PickNumber(input.Row, input.Col)
	round, _ := e.model.Board.RoundOf(pick)

	sel := Selection{Coord: coord, Pick: pick, Round: round}
	sel.Targeted = e.scoreStrategy(input.Targeted, pick)

	sel.Whole = e.scoreStrategy(input.Whole, pick)
	if swapped := e.scoreStrategy(input.Whole.SwapNames(), pick); swapped.Total() > sel.Whole.Total() {
		sel.Whole = swapped
	}

	sel.Winner = sel.Targeted
	if sel.Whole.Total() > sel.Targeted.Total() {
		sel.Winner = sel.Whole
	}
	return sel
}

// scoreStrategy finds the best catalog candidate for one observation over
// the full color-filtered pool.
func (e *Engine) scoreStrategy(obs score.Observation, pick int) StrategyResult {
	result := StrategyResult{
		Strategy:    obs.Strategy,
		Swapped:     obs.Swapped,
		Observation: obs,
	}
	if obs.IsEmpty() {
		return result
	}

	pool := candidatePool(e.catalog, obs.Color, nil)
	dctx := e.model.PoolContext(pick, entryRanks(pool))
	entry, breakdown, ok := e.bestEntry(obs, pool, dctx)
	if !ok {
		return result
	}
	result.Candidate = entry
	result.HasCandidate = true
	result.Breakdown = breakdown
	return result
}

// logSelection emits one debug decision line per cell in the standard
// decision_* shape.
func (e *Engine) logSelection(sel Selection) {
	reason := "targeted retained"
	switch {
	case sel.Winner.Strategy == score.StrategyWhole && sel.Winner.Swapped:
		reason = "whole-cell with swapped names outscored targeted"
	case sel.Winner.Strategy == score.StrategyWhole:
		reason = "whole-cell outscored targeted"
	}

	attrs := []logging.Attr{
		logging.String(logging.FieldCell, sel.Coord.String()),
		logging.Int(logging.FieldPick, sel.Pick),
		logging.Float64("targeted_score", sel.Targeted.Total()),
		logging.Float64("whole_score", sel.Whole.Total()),
	}
	if sel.Winner.HasCandidate {
		attrs = append(attrs,
			logging.String(logging.FieldPlayer, sel.Winner.Candidate.DisplayName()),
			logging.Float64(logging.FieldScore, sel.Winner.Total()),
		)
	}
	attrs = append(attrs, logging.DecisionAttrs("strategy_selection", string(sel.Winner.Strategy), reason)...)
	e.logger.Debug(fmt.Sprintf("strategy selected for %s", sel.Coord), logging.Args(attrs...)...)
}
