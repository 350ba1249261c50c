// Package errors provides custom error types for the dictcheck system.
// These errors let callers tell a broken source apart from a data-quality
// problem, and carry enough context (source, record, field) to act on.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the dictcheck system
var (
	// ErrLoad indicates that a source could not be read or decoded
	ErrLoad = errors.New("load failed")

	// ErrDuplicateKey indicates that a snapshot holds the same (term, category) more than once
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates that a remote collaborator is temporarily unavailable
	ErrUnavailable = errors.New("unavailable")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")
)

// LoadError represents a failure to produce a snapshot from a source.
// Record is the 1-based record (row, array element or page item) when the
// failure is tied to one; zero means the whole source.
type LoadError struct {
	Source  string
	Kind    string
	Record  int
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "load %s", e.Source)
	if e.Kind != "" {
		fmt.Fprintf(&b, " (%s)", e.Kind)
	}
	if e.Record > 0 {
		fmt.Fprintf(&b, " record %d", e.Record)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %s", e.Field)
	}
	b.WriteString(": ")
	switch {
	case e.Message != "" && e.Err != nil:
		fmt.Fprintf(&b, "%s: %v", e.Message, e.Err)
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString("unknown error")
	}
	return b.String()
}

// Unwrap implements errors.Unwrap
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// NewLoadError creates a new LoadError for a whole source.
func NewLoadError(source, kind, message string, err error) *LoadError {
	return &LoadError{
		Source:  source,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// WrapLoad wraps err as a LoadError. A ValidationError keeps its record
// and field so the message still points at the offending entry.
func WrapLoad(source, kind string, err error) error {
	if err == nil {
		return nil
	}
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	loadErr := &LoadError{Source: source, Kind: kind, Err: err}
	var ve *ValidationError
	if errors.As(err, &ve) {
		loadErr.Record = ve.Record
		loadErr.Field = ve.Field
	}
	return loadErr
}

// DuplicateKey is one (term, category) pair that occurs more than once in
// a snapshot, with every 0-based position it occupies.
type DuplicateKey struct {
	Term     string
	Category string
	Indexes  []int
}

// String renders the duplicate as category/term@[i j].
func (d DuplicateKey) String() string {
	idx := make([]string, len(d.Indexes))
	for i, n := range d.Indexes {
		idx[i] = fmt.Sprint(n)
	}
	return fmt.Sprintf("%s/%s@[%s]", d.Category, d.Term, strings.Join(idx, " "))
}

// DuplicateKeyError represents a data-quality violation: one snapshot holds
// the same identity key more than once.
type DuplicateKeyError struct {
	Source     string
	Duplicates []DuplicateKey
}

// Error implements the error interface
func (e *DuplicateKeyError) Error() string {
	parts := make([]string, len(e.Duplicates))
	for i, d := range e.Duplicates {
		parts[i] = d.String()
	}
	return fmt.Sprintf("duplicate keys in %s (%d): %s", e.Source, len(e.Duplicates), strings.Join(parts, ", "))
}

// Is implements errors.Is support
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// NewDuplicateKeyError creates a new DuplicateKeyError
func NewDuplicateKeyError(source string, duplicates []DuplicateKey) *DuplicateKeyError {
	return &DuplicateKeyError{Source: source, Duplicates: duplicates}
}

// ValidationError represents an entry or input that fails validation.
type ValidationError struct {
	Field   string
	Value   any
	Record  int
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	prefix := "validation failed"
	if e.Record > 0 {
		prefix = fmt.Sprintf("validation failed for record %d", e.Record)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field %s: %s", prefix, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents a non-success response from an HTTP collaborator.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Endpoint, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == 404:
		return target == ErrNotFound
	case e.StatusCode >= 500:
		return target == ErrUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(endpoint string, statusCode int, message string) *APIError {
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Component != "" {
		msg += " in " + e.Component
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsLoadError checks if an error is a load error
func IsLoadError(err error) bool {
	return errors.Is(err, ErrLoad)
}

// IsDuplicateKey checks if an error is a duplicate key error
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTimeout checks if an error is a timeout error, including an expired
// context deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// As is re-exported so callers need a single errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is re-exported so callers need a single errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Join is re-exported so callers need a single errors import.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
