// Package apperr holds the error taxonomy shared across features.
// Handlers branch on these with errors.Is / errors.As to pick HTTP
// statuses, so everything here is either a sentinel or a typed error.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups for resources that do not exist. Wrap it
// with %w when adding context.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ValidationError reports user-correctable input problems.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// TypeMismatchError reports a filter operator applied to a field type
// that does not support it.
type TypeMismatchError struct {
	FieldID   string
	FieldType string
	Operator  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("operator %q is not valid for %s field %q", e.Operator, e.FieldType, e.FieldID)
}

// ExportError wraps a rendering failure with the format that produced
// it.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed (%s): %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

func NewExport(format string, err error) error {
	return &ExportError{Format: format, Err: err}
}
