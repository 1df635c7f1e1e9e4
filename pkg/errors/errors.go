// Package errors provides custom error types for the fleetbook system.
// These errors enable programmatic error checking and clear diagnostics
// for batch runs that operate on external spreadsheet and CSV exports.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the fleetbook system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnresolvedPlates indicates invoice lines whose license plate has
	// no cost center in the refreshed mapping
	ErrUnresolvedPlates = errors.New("unresolved license plates")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "xlsx", "csv"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// ColumnError reports required columns missing from a tabular input.
// Loaders collect every missing column before failing so the operator
// can fix the export in one pass.
type ColumnError struct {
	File    string
	Label   string // logical table name: "FLEET", "HR", "MAPPING", "INVOICE"
	Missing []string
	Have    []string
}

// Error implements the error interface
func (e *ColumnError) Error() string {
	return fmt.Sprintf("[%s] missing required columns %v in %s (available: %s)",
		e.Label, e.Missing, e.File, strings.Join(e.Have, ", "))
}

// Is implements errors.Is support
func (e *ColumnError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewColumnError creates a new ColumnError
func NewColumnError(file, label string, missing, have []string) *ColumnError {
	return &ColumnError{File: file, Label: label, Missing: missing, Have: have}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
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
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// UnresolvedError reports invoice lines that could not be resolved to a
// cost center. The run writes a diagnostic file instead of the booking
// export when this error is returned.
type UnresolvedError struct {
	Plates         []string
	DiagnosticFile string
}

// Error implements the error interface
func (e *UnresolvedError) Error() string {
	if e.DiagnosticFile != "" {
		return fmt.Sprintf("missing cost center mapping for %d license plates, exported %s; update the mapping and rerun",
			len(e.Plates), e.DiagnosticFile)
	}
	return fmt.Sprintf("missing cost center mapping for %d license plates", len(e.Plates))
}

// Is implements errors.Is support
func (e *UnresolvedError) Is(target error) bool {
	return target == ErrUnresolvedPlates
}

// NewUnresolvedError creates a new UnresolvedError
func NewUnresolvedError(plates []string, diagnosticFile string) *UnresolvedError {
	return &UnresolvedError{Plates: plates, DiagnosticFile: diagnosticFile}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnresolved checks if an error reports unresolved invoice plates
func IsUnresolved(err error) bool {
	return errors.Is(err, ErrUnresolvedPlates)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
