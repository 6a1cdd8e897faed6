package inventory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when no active item exists at the given id.
	ErrNotFound = errors.New("inventory item not found")
	// ErrForbidden is returned when the actor lacks permission for the
	// operation.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is returned when a write collides with concurrent state,
	// e.g. a unique constraint violation.
	ErrConflict = errors.New("conflict")
)

// ValidationError reports every violated field of a request at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
