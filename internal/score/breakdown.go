package score

// Fixed component maxima. The total ceiling is their sum.
const (
	MaxLastName        = 40.0
	MaxFirstName       = 15.0
	MaxTeam            = 15.0
	MaxBye             = 10.0
	MaxColorPosition   = 15.0
	MaxTextPosition    = 10.0
	MaxDraftLikelihood = 20.0
	MaxTotal           = 125.0
)

// Breakdown is the per-component score for one observation/candidate pair.
// Every component is non-negative and bounded by its maximum; a zero value
// means the evidence was absent or contradicted, never that scoring failed.
type Breakdown struct {
	LastName        float64 `json:"last_name"`
	FirstName       float64 `json:"first_name"`
	Team            float64 `json:"team"`
	Bye             float64 `json:"bye"`
	ColorPosition   float64 `json:"color_position"`
	TextPosition    float64 `json:"text_position"`
	DraftLikelihood float64 `json:"draft_likelihood"`
}

// Total sums the components, capped at the documented ceiling.
func (b Breakdown) Total() float64 {
	total := b.LastName + b.FirstName + b.Team + b.Bye + b.ColorPosition + b.TextPosition + b.DraftLikelihood
	if total > MaxTotal {
		return MaxTotal
	}
	return total
}

// IsZero reports whether every component scored nothing.
func (b Breakdown) IsZero() bool {
	return b == Breakdown{}
}
