// Package errors provides custom error types for the boardmerge system.
// These errors enable programmatic error checking and keep the distinction
// between user-resolvable conflicts, terminal input errors, and programmer
// errors (precondition violations) explicit throughout the engine.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the boardmerge system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState indicates an operation was attempted in a state that
	// does not permit it. These are programmer errors, not user errors.
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict indicates an operation is blocked until a pending
	// conflict is resolved by the caller
	ErrConflict = errors.New("unresolved conflict")

	// ErrProtected indicates an attempt to modify a protected resource,
	// such as renaming or deleting the default category
	ErrProtected = errors.New("protected resource")

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
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
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

// DuplicateNameError reports an identity collision: a subject, category, or
// term already exists under the same case-insensitive name. Location names
// where the existing resource lives (for subjects, its category's display
// name) so callers can surface it instead of inserting.
type DuplicateNameError struct {
	Resource string
	Name     string
	Location string
}

// Error implements the error interface
func (e *DuplicateNameError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s %q already exists in %s", e.Resource, e.Name, e.Location)
	}
	return fmt.Sprintf("%s %q already exists", e.Resource, e.Name)
}

// Is implements errors.Is support
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewDuplicateNameError creates a new DuplicateNameError
func NewDuplicateNameError(resource, name, location string) *DuplicateNameError {
	return &DuplicateNameError{Resource: resource, Name: name, Location: location}
}

// PreconditionError represents a violated operation precondition, such as
// applying resolutions while conflicts are still unresolved. Preconditions
// are enforced loudly: they indicate a bug in the caller, not a condition
// the user can recover from.
type PreconditionError struct {
	Operation string
	Message   string
}

// Error implements the error interface
func (e *PreconditionError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("precondition violated in %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("precondition violated: %s", e.Message)
}

// Is implements errors.Is support
func (e *PreconditionError) Is(target error) bool {
	return target == ErrInvalidState
}

// NewPreconditionError creates a new PreconditionError
func NewPreconditionError(operation, message string) *PreconditionError {
	return &PreconditionError{Operation: operation, Message: message}
}

// ParseError represents an error when parsing import data
type ParseError struct {
	Format  string // "csv", "yaml"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s file %s at line %d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
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

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "stat", "open"
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

// UnresolvedConflictsError reports conflict names that still lack a
// resolution when a stage transition was attempted.
type UnresolvedConflictsError struct {
	Stage string
	Names []string
}

// Error implements the error interface
func (e *UnresolvedConflictsError) Error() string {
	return fmt.Sprintf("%s has %d unresolved conflicts: %s", e.Stage, len(e.Names), strings.Join(e.Names, ", "))
}

// Is implements errors.Is support
func (e *UnresolvedConflictsError) Is(target error) bool {
	return target == ErrConflict
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvalidState checks if an error is a precondition violation
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsConflict checks if an error is blocked on a pending conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsProtected checks if an error is a protected-resource error
func IsProtected(err error) bool {
	return errors.Is(err, ErrProtected)
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
