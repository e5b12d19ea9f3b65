package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrUnavailable   = errors.New("unavailable")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrUnavailable
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Category labels, stable for scripts and log queries.
const (
	CategoryOK           = "ok"
	CategoryInvalidInput = "invalid input"
	CategoryConfig       = "configuration"
	CategoryNotFound     = "not found"
	CategoryConflict     = "conflict"
	CategoryFailure      = "failure"
)

// Category names the broad failure class for user-facing reporting. Input
// problems the operator can fix stay distinct from environment failures.
func Category(err error) string {
	switch {
	case err == nil:
		return CategoryOK
	case errors.Is(err, ErrValidation):
		return CategoryInvalidInput
	case errors.Is(err, ErrConfiguration):
		return CategoryConfig
	case errors.Is(err, ErrNotFound):
		return CategoryNotFound
	case errors.Is(err, ErrConflict):
		return CategoryConflict
	default:
		return CategoryFailure
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
