// Package logging configures structured slog loggers for gridiron.
//
// Two output formats are supported: a human-oriented console format and
// line-delimited JSON. Helpers attach standardized attribute keys so that
// decision logs stay greppable across components.
package logging
