package score

import (
	"strings"

	"gridiron/internal/catalog"
)

// Strategy tags which extraction pass produced an observation.
type Strategy string

const (
	// StrategyTargeted extracts each field from its own cropped region.
	StrategyTargeted Strategy = "targeted"
	// StrategyWhole segments fields out of the whole cell's text.
	StrategyWhole Strategy = "whole"
	// StrategyManual marks operator-entered corrections.
	StrategyManual Strategy = "manual"
)

// ColorEstimate is the color-derived position guess for a cell. Confidence
// reflects the detection tier: 1.0 for a calibrated profile, 0.5 for the
// statistical fallback.
type ColorEstimate struct {
	Position   catalog.Position `json:"position"`
	Confidence float64          `json:"confidence"`
}

// Observation carries the recognized text fields for one cell from one
// extraction strategy. Fields hold raw trimmed text; comparison-form
// normalization happens inside the scorer so the original recognition
// survives for raw-text fallbacks and display.
type Observation struct {
	Row          int
	Col          int
	PositionText string
	FirstText    string
	LastText     string
	TeamText     string
	ByeText      string
	Color        *ColorEstimate
	Strategy     Strategy
	Swapped      bool
}

// SwapNames returns a copy with the first and last name fields exchanged.
// Whole-cell segmentation cannot always tell which line held which name,
// so its observation is scored both ways.
func (o Observation) SwapNames() Observation {
	swapped := o
	swapped.FirstText, swapped.LastText = o.LastText, o.FirstText
	swapped.Swapped = !o.Swapped
	return swapped
}

// IsEmpty reports whether the observation carries no evidence at all.
func (o Observation) IsEmpty() bool {
	return strings.TrimSpace(o.PositionText) == "" &&
		strings.TrimSpace(o.FirstText) == "" &&
		strings.TrimSpace(o.LastText) == "" &&
		strings.TrimSpace(o.TeamText) == "" &&
		strings.TrimSpace(o.ByeText) == "" &&
		o.Color == nil
}
