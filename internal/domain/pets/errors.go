package pets

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound también cubre "existe pero no es tuyo" cuando no queremos revelar existencia.
	ErrNotFound = errors.New("pet not found")

	// ErrForbidden solo se usa cuando la existencia ya quedó expuesta (delete).
	ErrForbidden = errors.New("forbidden")

	ErrUpload = errors.New("pet image upload failed")
	ErrStore  = errors.New("pet store error")
)

// ValidationError agrupa los errores por campo (campo -> mensajes en orden).
type ValidationError struct {
	Fields map[string][]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// FieldErrors devuelve los mensajes de un campo (nil si no tiene).
func (e *ValidationError) FieldErrors(field string) []string {
	return e.Fields[field]
}
