// Package services defines shared utilities consumed by the reconciliation
// pipeline and its collaborator surfaces.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep failure
//     classification consistent across catalog loading, ingestion, the
//     session store, and exporters.
//   - Context helpers that stamp session identifiers for logging.
//
// Use these helpers when wiring new command or collaborator logic so
// operational behaviour (error handling, observability) stays uniform.
package services
