// Package reconcile turns per-cell observations into a uniquely assigned
// draft board.
//
// The engine runs three passes over a board's cells. Selection scores each
// cell's extraction strategies independently and keeps the stronger one.
// Resolution walks cells in board order against a shrinking candidate pool
// and either commits the best catalog candidate or falls back to the raw
// recognized text. The override pass then honors exact last-name matches,
// stealing identities from weaker standard assignments and immediately
// re-resolving the displaced cell. Operator corrections reuse the same
// board bookkeeping and lock their cells against later steals.
package reconcile
