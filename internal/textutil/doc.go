// Package textutil provides text normalization helpers shared by the catalog
// and observation layers.
//
// The primary use cases are:
//   - Folding diacritics so accented and plain spellings compare equal
//   - Collapsing whitespace and stripping non-letter noise from recognized text
//   - Producing display-cased names from lowercase normalized fields
//
// All helpers are pure functions over strings. Matching semantics (fuzzy
// ratios, identity keys) live with their callers; this package only makes the
// inputs comparable.
package textutil
