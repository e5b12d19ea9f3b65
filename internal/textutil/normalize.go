package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes text and strips combining marks, turning
// accented characters into their base form.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var titleCaser = cases.Title(language.Und)

// FoldDiacritics replaces accented characters with their unaccented base
// form. Input that cannot be transformed is returned unchanged.
func FoldDiacritics(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return folded
}

// CollapseWhitespace trims the string and squeezes interior whitespace runs
// down to single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// LettersOnly keeps letters and drops everything else, including spaces.
// Recognized position text arrives with stray punctuation and digits;
// reducing it to its letters makes it comparable to position codes.
func LettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LettersSpaces keeps letters and spaces and drops everything else,
// including digits and punctuation. Whitespace runs are collapsed
// afterward. Hyphenated names lose the hyphen without gaining a space, so
// both sides of a comparison must pass through the same helper.
func LettersSpaces(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return CollapseWhitespace(b.String())
}

// LettersDigitsSpaces keeps letters, digits, and spaces, dropping
// punctuation. Whitespace runs are collapsed afterward.
func LettersDigitsSpaces(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return CollapseWhitespace(b.String())
}

// TitleCase converts a lowercase normalized name to display casing.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}
	return titleCaser.String(s)
}
