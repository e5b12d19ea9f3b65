package score

import (
	"strconv"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"gridiron/internal/catalog"
	"gridiron/internal/draft"
)

// nearMissRatio is the minimum plain fuzzy ratio for recognized position
// text to count as a near miss of a candidate's position code.
const nearMissRatio = 50

// Params holds the scorer's calibration knobs.
type Params struct {
	// PositionPartialCredit is the fraction of the text-position maximum
	// granted on a near-miss code, in [0, 1]. Zero disables partial credit.
	PositionPartialCredit float64
}

// Scorer computes breakdowns. It carries calibration only; Score is a pure
// function of its inputs and is safe to call from many goroutines.
type Scorer struct {
	positionPartialCredit float64
}

// NewScorer builds a Scorer, clamping the partial-credit fraction into
// [0, 1].
func NewScorer(params Params) *Scorer {
	credit := params.PositionPartialCredit
	if credit < 0 {
		credit = 0
	}
	if credit > 1 {
		credit = 1
	}
	return &Scorer{positionPartialCredit: credit}
}

// Score evaluates one observation against one catalog candidate under the
// cell's draft context. Missing or malformed fields zero their components;
// the call always returns a complete breakdown. An observation with no
// evidence at all scores zero everywhere, draft proximity included, so an
// unreadable cell can never accumulate points toward a candidate.
func (s *Scorer) Score(obs Observation, entry catalog.Entry, dctx draft.Context) Breakdown {
	var b Breakdown
	if obs.IsEmpty() {
		return b
	}

	lastText := catalog.NormalizeName(obs.LastText)
	if lastText != "" {
		entryLast := catalog.NormalizeName(entry.LastName)
		b.LastName = float64(fuzzy.TokenSetRatio(lastText, entryLast)) * MaxLastName / 100
	}

	firstText := catalog.NormalizeName(obs.FirstText)
	if firstText != "" {
		entryFirst := catalog.NormalizeName(entry.FirstName)
		b.FirstName = float64(fuzzy.TokenSetRatio(firstText, entryFirst)) * MaxFirstName / 100
	}

	if team := catalog.NormalizeTeam(obs.TeamText); team != "" && strings.EqualFold(team, entry.Team) {
		b.Team = MaxTeam
	}

	if bye, ok := ParseBye(obs.ByeText); ok && bye == entry.ByeWeek {
		b.Bye = MaxBye
	}

	if obs.Color != nil && obs.Color.Position == entry.Position {
		b.ColorPosition = MaxColorPosition * clampConfidence(obs.Color.Confidence)
	}

	b.TextPosition = s.scorePositionText(obs.PositionText, entry.Position)

	b.DraftLikelihood = MaxDraftLikelihood * dctx.Relative(entry.Rank)

	return b
}

// scorePositionText grants full credit on an exact code match and the
// configured fraction on a near miss (single-character recognition noise).
func (s *Scorer) scorePositionText(positionText string, position catalog.Position) float64 {
	cleaned := catalog.CleanPositionText(positionText)
	if cleaned == "" {
		return 0
	}
	if cleaned == string(position) {
		return MaxTextPosition
	}
	if s.positionPartialCredit > 0 && fuzzy.Ratio(cleaned, string(position)) >= nearMissRatio {
		return MaxTextPosition * s.positionPartialCredit
	}
	return 0
}

// ParseBye reads the digits out of recognized bye text, tolerating the
// stray punctuation recognition leaves behind. Zero marks an unknown bye,
// so it never earns credit.
func ParseBye(value string) (int, bool) {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	bye, err := strconv.Atoi(digits.String())
	if err != nil || bye <= 0 {
		return 0, false
	}
	return bye, true
}

func clampConfidence(confidence float64) float64 {
	if confidence <= 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
