package catalog

import (
	"strings"

	"gridiron/internal/textutil"
)

// Position identifies one of the roster slots printed on draft board cards.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDST Position = "DST"
)

// Positions returns every valid position in conventional display order.
func Positions() []Position {
	return []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDST}
}

// ParsePosition maps text to a Position. Stray punctuation and digits are
// stripped first, so "D/ST" and "RB8" parse; DEF collapses to DST.
func ParsePosition(value string) (Position, bool) {
	cleaned := CleanPositionText(value)
	switch cleaned {
	case "QB":
		return PositionQB, true
	case "RB":
		return PositionRB, true
	case "WR":
		return PositionWR, true
	case "TE":
		return PositionTE, true
	case "K":
		return PositionK, true
	case "DST", "DEF":
		return PositionDST, true
	default:
		return "", false
	}
}

// CleanPositionText reduces recognized position text to uppercase letters.
// The result is not validated; use ParsePosition when only the six known
// codes are acceptable.
func CleanPositionText(value string) string {
	return strings.ToUpper(textutil.LettersOnly(value))
}
