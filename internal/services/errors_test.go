package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gridiron/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrValidation, "catalog", "load", "duplicate identity", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"catalog", "load", "duplicate identity"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "store", "open", "cannot open database", nil)
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected default marker, got %v", err)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"validation", services.Wrap(services.ErrValidation, "ingest", "parse", "bad cell", nil), "invalid input"},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "validate", "bad threshold", nil), "configuration"},
		{"not found", services.Wrap(services.ErrNotFound, "session", "lookup", "missing", nil), "not found"},
		{"conflict", services.Wrap(services.ErrConflict, "correct", "apply", "identity held", nil), "conflict"},
		{"other", errors.New("disk on fire"), "failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.Category(tt.err); got != tt.want {
				t.Fatalf("Category() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionIDContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := services.SessionIDFromContext(ctx); ok {
		t.Fatal("expected no session id on empty context")
	}
	ctx = services.WithSessionID(ctx, "abc-123")
	id, ok := services.SessionIDFromContext(ctx)
	if !ok || id != "abc-123" {
		t.Fatalf("SessionIDFromContext() = %q, %v", id, ok)
	}
}
