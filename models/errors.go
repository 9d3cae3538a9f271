package models

import (
	"fmt"
	"strings"
)

// FieldError describes a single rejected input value.
type FieldError struct {
	Field    string // Flag or config key
	Value    any    // Offending value
	Expected string // Accepted domain, human readable
	Err      error  // Optional underlying cause
}

func (fe FieldError) String() string {
	if fe.Expected == "" {
		return fmt.Sprintf("%s: %v", fe.Field, fe.Err)
	}
	return fmt.Sprintf("%s: got %v, expected %s", fe.Field, fe.Value, fe.Expected)
}

// ValidationError aggregates every problem found in user input.
//
// It is returned before any external process is started. Causes attached to
// individual fields are reachable through errors.Is and errors.As.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError returns nil when problems is empty.
func NewValidationError(problems []FieldError) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Fields: problems}
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		lines[i] = fe.String()
	}
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(lines, "\n  - "))
}

// Unwrap exposes the underlying field causes.
func (e *ValidationError) Unwrap() []error {
	var errs []error
	for _, fe := range e.Fields {
		if fe.Err != nil {
			errs = append(errs, fe.Err)
		}
	}
	return errs
}

// HasField reports whether the named field was rejected.
func (e *ValidationError) HasField(name string) bool {
	for _, fe := range e.Fields {
		if fe.Field == name {
			return true
		}
	}
	return false
}
