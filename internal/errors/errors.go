// Package errors provides a lightweight structured error type (DocVersionsError)
// for category-based classification of fatal and per-file failures.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of an error for classification.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Filesystem and markup processing errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryMarkup     ErrorCategory = "markup"

	// Outer surfaces (commit, notification, watch)
	CategoryGit     ErrorCategory = "git"
	CategoryNetwork ErrorCategory = "network"
	CategoryRuntime ErrorCategory = "runtime"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ContextFields carries structured context for DocVersionsError.
type ContextFields map[string]any

// DocVersionsError is a structured error with category, severity and context.
type DocVersionsError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *DocVersionsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping.
func (e *DocVersionsError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *DocVersionsError) WithContext(key string, value any) *DocVersionsError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// WithSeverity overrides the severity.
func (e *DocVersionsError) WithSeverity(severity ErrorSeverity) *DocVersionsError {
	e.Severity = severity
	return e
}

// Build returns the error itself, terminating a builder chain.
func (e *DocVersionsError) Build() *DocVersionsError {
	return e
}

// NewError creates an error of the given category with SeverityError.
func NewError(category ErrorCategory, message string) *DocVersionsError {
	return &DocVersionsError{
		Category: category,
		Severity: SeverityError,
		Message:  message,
	}
}

// WrapError wraps an existing error with a new DocVersionsError (SeverityError).
func WrapError(err error, category ErrorCategory, message string) *DocVersionsError {
	return &DocVersionsError{
		Category: category,
		Severity: SeverityError,
		Message:  message,
		Cause:    err,
	}
}

// New creates a new DocVersionsError with an explicit severity.
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocVersionsError {
	return &DocVersionsError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocVersionsError with an explicit severity that wraps err.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocVersionsError {
	return &DocVersionsError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As finds the first DocVersionsError in err's chain.
func As(err error) (*DocVersionsError, bool) {
	var dve *DocVersionsError
	if stdErrors.As(err, &dve) {
		return dve, true
	}
	return nil, false
}

// IsCategory checks if an error (or anything it wraps) belongs to a category.
func IsCategory(err error, category ErrorCategory) bool {
	if dve, ok := As(err); ok {
		return dve.Category == category
	}
	return false
}

// IsFatal reports whether err carries SeverityFatal.
func IsFatal(err error) bool {
	if dve, ok := As(err); ok {
		return dve.Severity == SeverityFatal
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal.
func GetCategory(err error) ErrorCategory {
	if dve, ok := As(err); ok {
		return dve.Category
	}
	return CategoryInternal
}
