package draft

import "math"

// Default Gaussian spread parameters. Sigma for rank k is
// SigmaBase + SigmaSlope*k.
const (
	DefaultSigmaBase  = 2.0
	DefaultSigmaSlope = 0.1
)

// Model combines board geometry with the rank-likelihood distribution.
// The spread parameters are calibration knobs; zero values fall back to the
// defaults.
type Model struct {
	Board      Board
	SigmaBase  float64
	SigmaSlope float64
}

// NewModel builds a Model. A non-positive base or negative slope falls
// back to the defaults; a zero slope is legal and means constant spread.
func NewModel(board Board, sigmaBase, sigmaSlope float64) Model {
	if sigmaBase <= 0 {
		sigmaBase = DefaultSigmaBase
	}
	if sigmaSlope < 0 {
		sigmaSlope = DefaultSigmaSlope
	}
	return Model{Board: board, SigmaBase: sigmaBase, SigmaSlope: sigmaSlope}
}

// Density returns the unnormalized Gaussian likelihood in (0, 1] that a
// candidate of the given catalog rank is taken at the given pick. The
// distribution is centered at the pick; expected rank and pick are aligned
// one to one.
func (m Model) Density(rank, pick int) float64 {
	if rank < 1 {
		rank = 1
	}
	sigmaBase := m.SigmaBase
	if sigmaBase <= 0 {
		sigmaBase = DefaultSigmaBase
	}
	sigmaSlope := m.SigmaSlope
	if sigmaSlope < 0 {
		sigmaSlope = DefaultSigmaSlope
	}
	sigma := sigmaBase + sigmaSlope*float64(rank)
	z := (float64(pick) - float64(rank)) / sigma
	return math.Exp(-0.5 * z * z)
}

// Context captures the draft signal for one cell against one candidate
// pool: the pick under consideration and the strongest density any pool
// member achieves there. Candidates are scored relative to that maximum.
type Context struct {
	Pick       int
	maxDensity float64
	model      Model
}

// PoolContext computes the scoring context for a pick over the competing
// candidates' ranks.
func (m Model) PoolContext(pick int, ranks []int) Context {
	ctx := Context{Pick: pick, model: m}
	for _, rank := range ranks {
		if d := m.Density(rank, pick); d > ctx.maxDensity {
			ctx.maxDensity = d
		}
	}
	return ctx
}

// Relative returns the candidate's density normalized by the pool maximum,
// in [0, 1]. An empty pool yields zero for every rank.
func (c Context) Relative(rank int) float64 {
	if c.maxDensity <= 0 {
		return 0
	}
	return c.model.Density(rank, c.Pick) / c.maxDensity
}
