package catalog

import (
	"strings"

	"gridiron/internal/textutil"
)

// nameSuffixes lists generational suffixes dropped during name
// normalization so "Odell Beckham Jr" and "Odell Beckham" share a key.
var nameSuffixes = map[string]struct{}{
	"jr":  {},
	"sr":  {},
	"ii":  {},
	"iii": {},
	"iv":  {},
	"v":   {},
}

// teamAlias maps a franchise city or nickname to its standard abbreviation.
// Order matters for the partial-containment fallback, so the table is a
// slice rather than a map.
type teamAlias struct {
	name   string
	abbrev string
}

var teamAliases = []teamAlias{
	{"BALTIMORE", "BAL"}, {"RAVENS", "BAL"},
	{"BUFFALO", "BUF"}, {"BILLS", "BUF"},
	{"CINCINNATI", "CIN"}, {"BENGALS", "CIN"},
	{"CLEVELAND", "CLE"}, {"BROWNS", "CLE"},
	{"DENVER", "DEN"}, {"BRONCOS", "DEN"},
	{"HOUSTON", "HOU"}, {"TEXANS", "HOU"},
	{"INDIANAPOLIS", "IND"}, {"COLTS", "IND"},
	{"JACKSONVILLE", "JAX"}, {"JAGUARS", "JAX"},
	{"KANSAS CITY", "KC"}, {"CHIEFS", "KC"},
	{"LAS VEGAS", "LV"}, {"RAIDERS", "LV"},
	{"RAMS", "LAR"},
	{"LOS ANGELES", "LAC"}, {"CHARGERS", "LAC"},
	{"MIAMI", "MIA"}, {"DOLPHINS", "MIA"},
	{"NEW ENGLAND", "NE"}, {"PATRIOTS", "NE"},
	{"NEW YORK GIANTS", "NYG"}, {"GIANTS", "NYG"},
	{"NEW YORK", "NYJ"}, {"JETS", "NYJ"},
	{"PITTSBURGH", "PIT"}, {"STEELERS", "PIT"},
	{"TENNESSEE", "TEN"}, {"TITANS", "TEN"},
	{"ARIZONA", "ARI"}, {"CARDINALS", "ARI"},
	{"ATLANTA", "ATL"}, {"FALCONS", "ATL"},
	{"CAROLINA", "CAR"}, {"PANTHERS", "CAR"},
	{"CHICAGO", "CHI"}, {"BEARS", "CHI"},
	{"DALLAS", "DAL"}, {"COWBOYS", "DAL"},
	{"DETROIT", "DET"}, {"LIONS", "DET"},
	{"GREEN BAY", "GB"}, {"PACKERS", "GB"},
	{"MINNESOTA", "MIN"}, {"VIKINGS", "MIN"},
	{"NEW ORLEANS", "NO"}, {"SAINTS", "NO"},
	{"PHILADELPHIA", "PHI"}, {"EAGLES", "PHI"},
	{"SAN FRANCISCO", "SF"}, {"49ERS", "SF"},
	{"SEATTLE", "SEA"}, {"SEAHAWKS", "SEA"},
	{"TAMPA BAY", "TB"}, {"BUCCANEERS", "TB"},
	{"WASHINGTON", "WAS"}, {"COMMANDERS", "WAS"},
	{"FREE AGENT", "FA"}, {"FA", "FA"},
}

// NormalizeName produces the lowercase comparison form of a name: diacritics
// folded, punctuation and digits dropped, generational suffixes removed.
// Both catalog names and recognized text must pass through here before any
// fuzzy comparison or identity-key construction.
func NormalizeName(name string) string {
	lowered := strings.ToLower(textutil.FoldDiacritics(name))
	stripped := textutil.LettersSpaces(lowered)
	if stripped == "" {
		return ""
	}
	tokens := strings.Fields(stripped)
	kept := tokens[:0]
	for _, token := range tokens {
		if _, ok := nameSuffixes[token]; ok {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

// NormalizeTeam maps recognized team text to a standard abbreviation.
// Full franchise names and nicknames resolve through the alias table, first
// by exact match and then by containment in either direction. Strings of
// abbreviation length pass through uppercased before the containment
// fallback runs, so "CAR" stays Carolina instead of landing inside
// "CARDINALS"; anything longer that resolves nowhere normalizes to empty.
func NormalizeTeam(teamText string) string {
	upper := strings.ToUpper(textutil.CollapseWhitespace(teamText))
	if upper == "" {
		return ""
	}
	for _, alias := range teamAliases {
		if alias.name == upper {
			return alias.abbrev
		}
	}
	if len(upper) <= 3 {
		return upper
	}
	for _, alias := range teamAliases {
		if strings.Contains(upper, alias.name) || strings.Contains(alias.name, upper) {
			return alias.abbrev
		}
	}
	return ""
}
