package note

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidInput    = errors.New("invalid note input")
	ErrInvalidPageSize = errors.New("page size must be positive")
	ErrNoteNotFound    = errors.New("note not found")
	ErrInvalidPhoto    = errors.New("invalid photo payload")
)

// ValidationError lists the fields that blocked an operation before any
// network call. It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
