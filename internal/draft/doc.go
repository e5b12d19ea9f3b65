// Package draft models where a player of a given catalog rank is expected
// to land on a snake-order draft board.
//
// A Board maps grid coordinates to linear pick numbers (even rows run left
// to right, odd rows run right to left). A Model layers a Gaussian
// likelihood on top: the density for rank k at pick p is centered at p with
// a standard deviation that widens as rank grows, since late picks are less
// predictable than early ones. Scoring consumes densities through a
// Context, which normalizes each candidate's density against the strongest
// density in the same candidate pool; the draft signal rewards dominance
// over the field rather than absolute closeness.
package draft
