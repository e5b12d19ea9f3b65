// Package main hosts the gridiron CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into
// reconciliation runs, catalog inspection, stored-session queries, manual
// corrections, and export writes. It centralizes configuration resolution,
// session store access, and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
