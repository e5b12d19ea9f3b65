// Package score turns one cell observation and one catalog candidate into
// an explainable seven-component breakdown.
//
// Components and their fixed maxima: last name 40, first name 15, team 15,
// bye 10, color position 15, text position 10, draft likelihood 20, for a
// total ceiling of 125. Name components use fuzzy token-set similarity;
// team and bye are binary; the color component scales with the detection
// tier's confidence; the text-position component can grant a configurable
// partial credit for near-miss codes; the draft component consumes the
// pool-normalized likelihood from the draft package.
//
// Score is a pure function. It never mutates shared state and never fails:
// missing or malformed fields degrade their components to zero, so every
// call returns a complete breakdown. Resolution passes rely on this when
// they re-score the same observation under different candidate pools.
package score
