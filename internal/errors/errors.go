// Package errors provides a lightweight structured error type (PrepError)
// for category-based classification across the generate and strip workflows.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a gbsaprep error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Directory traversal and file lookup errors
	CategoryDiscovery ErrorCategory = "discovery"

	// External tool integration errors
	CategoryScheduler ErrorCategory = "scheduler"
	CategoryCpptraj   ErrorCategory = "cpptraj"

	// Runtime and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryLedger     ErrorCategory = "ledger"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the whole run
	SeverityError   ErrorSeverity = "error"   // Per-mutation failure, run continues
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// PrepError is a structured error with category, severity, and context
type PrepError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for PrepError
type ContextFields map[string]any

// Error implements the error interface
func (e *PrepError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *PrepError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *PrepError) WithContext(key string, value any) *PrepError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// IsFatal reports whether the error should abort the whole run.
func (e *PrepError) IsFatal() bool {
	return e.Severity == SeverityFatal
}

// New creates a new PrepError
func New(category ErrorCategory, severity ErrorSeverity, message string) *PrepError {
	return &PrepError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new PrepError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *PrepError {
	return &PrepError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}
