// Package ingest loads per-board observation documents produced by the
// photo extraction pipeline.
//
// A document carries the board geometry and one record per readable cell,
// each holding the targeted per-region text pass, the whole-cell
// segmentation pass, and an optional sticker color estimate. Unreadable
// cells are simply absent. Loading validates coordinates and color
// confidence tiers up front so reconciliation never sees malformed input.
package ingest
