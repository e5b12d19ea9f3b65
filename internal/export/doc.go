// Package export renders settled reconciliation results into the draft-day
// output files: round and seat text listings, a flat board CSV, the full
// JSON board document, and the low-confidence review sheet.
package export
