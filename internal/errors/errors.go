// Package errors provides sentinel errors and structured error details for kickstart.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid user input (project name, package list, config).
	ErrValidation = errors.New("validation error")

	// ErrEnvironment indicates a required external tool is missing.
	ErrEnvironment = errors.New("environment error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a file or directory was not found.
	ErrNotFound = errors.New("not found")

	// ErrInstall indicates dependency installation failed.
	ErrInstall = errors.New("dependency installation failed")
)

// DetailError captures structured error information for display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file or directory the error refers to (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewEnvironmentError creates an error for a missing external tool.
func NewEnvironmentError(message string, context map[string]string, hint string) error {
	return &DetailError{
		Type:    "environment check failed",
		Message: message,
		Context: context,
		Hint:    hint,
		Cause:   ErrEnvironment,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewPermissionError creates a permission denied error with details.
func NewPermissionError(message, location, hint string) error {
	return &DetailError{
		Type:     "permission denied",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrPermission,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
