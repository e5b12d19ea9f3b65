package logging

import (
	"context"
	"log/slog"

	"gridiron/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSessionID is the standardized structured logging key for reconciliation session identifiers.
	FieldSessionID = "session_id"
	// FieldCell is the standardized structured logging key for board cell coordinates (e.g. r3c7).
	FieldCell = "cell"
	// FieldPick is the standardized structured logging key for snake-draft pick numbers.
	FieldPick = "pick"
	// FieldStrategy is the standardized structured logging key for observation strategy names.
	FieldStrategy = "strategy"
	// FieldPlayer is the standardized structured logging key for catalog player display names.
	FieldPlayer = "player"
	// FieldScore is the standardized structured logging key for reconciliation score totals.
	FieldScore = "score"
	// FieldEventType is the standardized structured logging key for machine-readable event names.
	FieldEventType = "event_type"
	// FieldDecisionType is the standardized structured logging key for decision log categories.
	FieldDecisionType = "decision_type"
	// FieldDecisionResult is the standardized structured logging key for the chosen decision outcome.
	FieldDecisionResult = "decision_result"
	// FieldDecisionReason is the standardized structured logging key for the rationale behind a decision.
	FieldDecisionReason = "decision_reason"
	// FieldErrorHint is the standardized structured logging key for operator guidance on failures.
	FieldErrorHint = "error_hint"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 1)
	if id, ok := services.SessionIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSessionID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
