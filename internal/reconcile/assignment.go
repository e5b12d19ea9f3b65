package reconcile

import (
	"fmt"

	"gridiron/internal/catalog"
	"gridiron/internal/score"
	"gridiron/internal/textutil"
)

// Coord addresses one board cell by zero-based row and column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String renders the coordinate in the compact r<row>c<col> form used in
// logs and CLI output.
func (c Coord) String() string {
	return fmt.Sprintf("r%dc%d", c.Row, c.Col)
}

// Less orders coordinates row-major, matching the sequential sweeps.
func (c Coord) Less(other Coord) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// Source states where an assignment's fields came from.
type Source string

const (
	// SourceCatalog marks assignments backed by a catalog entry.
	SourceCatalog Source = "catalog"
	// SourceRawText marks fallbacks that keep the recognized text verbatim
	// because no candidate cleared the acceptance threshold.
	SourceRawText Source = "raw-text"
)

// Match classifies how a catalog-backed assignment was won. Raw-text
// fallbacks carry no match class.
type Match string

const (
	// MatchStandard marks assignments won on aggregate score.
	MatchStandard Match = "standard"
	// MatchExact marks assignments placed by the exact last-name override.
	MatchExact Match = "exact"
	// MatchManual marks operator corrections.
	MatchManual Match = "manual"
)

// Assignment is the reconciled content of one cell. Key is the reserved
// catalog identity and is zero for raw-text fallbacks, which reserve
// nothing.
type Assignment struct {
	Row       int             `json:"row"`
	Col       int             `json:"col"`
	Pick      int             `json:"pick"`
	Round     int             `json:"round"`
	FirstName string          `json:"first_name,omitempty"`
	LastName  string          `json:"last_name,omitempty"`
	Team      string          `json:"team,omitempty"`
	Position  string          `json:"position,omitempty"`
	Bye       int             `json:"bye,omitempty"`
	Rank      int             `json:"rank,omitempty"`
	Source    Source          `json:"source"`
	Match     Match           `json:"match,omitempty"`
	Locked    bool            `json:"locked,omitempty"`
	Strategy  score.Strategy  `json:"strategy,omitempty"`
	Swapped   bool            `json:"swapped,omitempty"`
	Breakdown score.Breakdown `json:"breakdown"`

	Key catalog.Key `json:"-"`
}

// Coord returns the assignment's cell coordinate.
func (a *Assignment) Coord() Coord {
	return Coord{Row: a.Row, Col: a.Col}
}

// Total is the assignment's committed score.
func (a *Assignment) Total() float64 {
	return a.Breakdown.Total()
}

// DisplayName joins the name fields for humans. Empty for unreadable cells.
func (a *Assignment) DisplayName() string {
	name := a.FirstName
	if a.LastName != "" {
		if name != "" {
			name += " "
		}
		name += a.LastName
	}
	return name
}

// Stealable reports whether the exact-match override may displace this
// assignment. Only unlocked standard catalog assignments give way.
func (a *Assignment) Stealable() bool {
	return !a.Locked && a.Source == SourceCatalog && a.Match == MatchStandard
}

func newCatalogAssignment(sel Selection, entry catalog.Entry, match Match, breakdown score.Breakdown) *Assignment {
	return &Assignment{
		Row:       sel.Coord.Row,
		Col:       sel.Coord.Col,
		Pick:      sel.Pick,
		Round:     sel.Round,
		FirstName: entry.FirstName,
		LastName:  entry.LastName,
		Team:      entry.Team,
		Position:  string(entry.Position),
		Bye:       entry.ByeWeek,
		Rank:      entry.Rank,
		Source:    SourceCatalog,
		Match:     match,
		Strategy:  sel.Winner.Strategy,
		Swapped:   sel.Winner.Swapped,
		Breakdown: breakdown,
		Key:       entry.Key(),
	}
}

// newRawTextAssignment keeps the recognized text as the cell content. The
// breakdown records the best rejected candidate's score so review output
// can show how close the cell came to the threshold.
func newRawTextAssignment(sel Selection, breakdown score.Breakdown) *Assignment {
	obs := sel.Winner.Observation
	position := ""
	if obs.Color != nil {
		position = string(obs.Color.Position)
	} else if cleaned := catalog.CleanPositionText(obs.PositionText); cleaned != "" {
		position = cleaned
	}
	bye := 0
	if parsed, ok := score.ParseBye(obs.ByeText); ok {
		bye = parsed
	}
	return &Assignment{
		Row:       sel.Coord.Row,
		Col:       sel.Coord.Col,
		Pick:      sel.Pick,
		Round:     sel.Round,
		FirstName: textutil.TitleCase(obs.FirstText),
		LastName:  textutil.TitleCase(obs.LastText),
		Team:      catalog.NormalizeTeam(obs.TeamText),
		Position:  position,
		Bye:       bye,
		Source:    SourceRawText,
		Strategy:  sel.Winner.Strategy,
		Swapped:   sel.Winner.Swapped,
		Breakdown: breakdown,
	}
}

// newManualAssignment builds a locked operator correction. Manual pins
// carry no breakdown.
func newManualAssignment(coord Coord, pick, round int, entry catalog.Entry) *Assignment {
	return &Assignment{
		Row:       coord.Row,
		Col:       coord.Col,
		Pick:      pick,
		Round:     round,
		FirstName: entry.FirstName,
		LastName:  entry.LastName,
		Team:      entry.Team,
		Position:  string(entry.Position),
		Bye:       entry.ByeWeek,
		Rank:      entry.Rank,
		Source:    SourceCatalog,
		Match:     MatchManual,
		Locked:    true,
		Strategy:  score.StrategyManual,
		Key:       entry.Key(),
	}
}

// newManualTextAssignment builds a locked free-text correction for players
// the catalog does not carry. It reserves no identity slot.
func newManualTextAssignment(coord Coord, pick, round int, first, last string) *Assignment {
	return &Assignment{
		Row:       coord.Row,
		Col:       coord.Col,
		Pick:      pick,
		Round:     round,
		FirstName: first,
		LastName:  last,
		Source:    SourceRawText,
		Match:     MatchManual,
		Locked:    true,
		Strategy:  score.StrategyManual,
	}
}
