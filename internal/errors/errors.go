// Package errors provides a lightweight structured error type (DocRenderError)
// used to classify rendering failures so the page-build driver and the CLI can
// attribute them to a page, a template or the configuration.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a DocRender error for classification
type ErrorCategory string

const (
	// Caller bugs: nil arguments, unsupported values, unknown page categories.
	CategoryContract ErrorCategory = "contract"

	// Template setup and page rendering errors
	CategoryCompile   ErrorCategory = "compile"
	CategoryLookup    ErrorCategory = "lookup"
	CategoryExecution ErrorCategory = "execution"

	// User-facing configuration and environment errors
	CategoryConfig     ErrorCategory = "config"
	CategoryFileSystem ErrorCategory = "filesystem"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Page fails, run may continue
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded output
)

// DocRenderError is a structured error with category, severity and context
type DocRenderError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocRenderError
type ContextFields map[string]any

// Error implements the error interface
func (e *DocRenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *DocRenderError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocRenderError) WithContext(key string, value any) *DocRenderError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocRenderError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocRenderError {
	return &DocRenderError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocRenderError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocRenderError {
	return &DocRenderError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As finds the outermost DocRenderError in err's chain.
func As(err error) (*DocRenderError, bool) {
	var dre *DocRenderError
	if stderrors.As(err, &dre) {
		return dre, true
	}
	return nil, false
}

// IsCategory checks if an error (or one it wraps) belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if dre, ok := As(err); ok {
		return dre.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DocRenderError
func GetCategory(err error) ErrorCategory {
	if dre, ok := As(err); ok {
		return dre.Category
	}
	return CategoryInternal
}
