// Package errors provides custom error types for the rollcall system.
// These errors enable programmatic error checking (errors.Is / errors.As)
// and carry enough context to diagnose a failed run from its message alone.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As and Join are re-exported so callers need only one errors import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors for the rollcall system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrLoadFailed indicates that an input table could not be loaded
	ErrLoadFailed = errors.New("load failed")

	// ErrDispatchFailed indicates that a notification could not be transmitted
	ErrDispatchFailed = errors.New("dispatch failed")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ColumnNotFoundError is returned when no column of a table matches a
// logical field after the primary label and every alternate were tried.
type ColumnNotFoundError struct {
	Field      string
	Candidates []string
	Available  []string
}

// Error implements the error interface
func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column for %s not found: tried [%s], available [%s]",
		e.Field, quoteJoin(e.Candidates), quoteJoin(e.Available))
}

// Is implements errors.Is support
func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewColumnNotFoundError creates a new ColumnNotFoundError
func NewColumnNotFoundError(field string, candidates, available []string) *ColumnNotFoundError {
	return &ColumnNotFoundError{
		Field:      field,
		Candidates: append([]string(nil), candidates...),
		Available:  append([]string(nil), available...),
	}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
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
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
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

// LoadError represents a failure to read a table from a spreadsheet or csv file.
type LoadError struct {
	Path  string
	Sheet string
	Err   error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("failed to load sheet %q of %s: %v", e.Sheet, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *LoadError) Is(target error) bool {
	return target == ErrLoadFailed
}

// NewLoadError creates a new LoadError
func NewLoadError(path, sheet string, err error) *LoadError {
	return &LoadError{Path: path, Sheet: sheet, Err: err}
}

// DispatchError reports a failed notification transmission. When the
// composed message could be kept, DraftPath names where it was saved.
type DispatchError struct {
	Recipients int
	DraftPath  string
	Err        error
}

// Error implements the error interface
func (e *DispatchError) Error() string {
	if e.DraftPath != "" {
		return fmt.Sprintf("failed to send message to %d recipients: %v (message saved as draft %s)",
			e.Recipients, e.Err, e.DraftPath)
	}
	return fmt.Sprintf("failed to send message to %d recipients: %v", e.Recipients, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *DispatchError) Is(target error) bool {
	return target == ErrDispatchFailed
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "stat"
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

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "csv", "template"
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
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
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

// IsLoadError checks if an error is a table load error
func IsLoadError(err error) bool {
	return errors.Is(err, ErrLoadFailed)
}

// IsDispatchError checks if an error is a notification dispatch error
func IsDispatchError(err error) bool {
	return errors.Is(err, ErrDispatchFailed)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

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

// WrapLoad wraps an error as a LoadError
func WrapLoad(path, sheet string, err error) error {
	if err == nil {
		return nil
	}
	return NewLoadError(path, sheet, err)
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
