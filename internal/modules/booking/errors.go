package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"roombooking/internal/domain"
)

var (
	ErrValidation            = errors.New("validation error")
	ErrNotFound              = errors.New("not found")
	ErrConflict              = errors.New("booking conflict")
	ErrDependencyUnavailable = errors.New("service temporarily unavailable")
	ErrUnexpected            = errors.New("unexpected failure")
)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError lists every existing booking the requested interval overlaps,
// ordered by start time.
type ConflictError struct {
	Conflicts []domain.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflict: %d overlapping booking(s)", len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
