package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Plan errors (PLAN-001 to PLAN-099)
	ErrCodePlanInvalid     ErrorCode = "PLAN-001"
	ErrCodePlannerSyntax   ErrorCode = "PLAN-002"
	ErrCodeVersionNotFound ErrorCode = "PLAN-003"
	ErrCodeNoCurrentPlan   ErrorCode = "PLAN-004"

	// Oracle errors (ORACLE-001 to ORACLE-099)
	ErrCodeOracleTransport ErrorCode = "ORACLE-001"
	ErrCodeOracleConfig    ErrorCode = "ORACLE-002"

	// Request errors (REQUEST-001 to REQUEST-099)
	ErrCodeRequestInvalid ErrorCode = "REQUEST-001"
	ErrCodeRequestMode    ErrorCode = "REQUEST-002"

	// Bundle errors (BUNDLE-001 to BUNDLE-099)
	ErrCodeBundlePush    ErrorCode = "BUNDLE-001"
	ErrCodeBundlePull    ErrorCode = "BUNDLE-002"
	ErrCodeBundleInvalid ErrorCode = "BUNDLE-003"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeFileUnmarshal   ErrorCode = "IO-005"
)

// UIForgeError represents an enhanced error with code, suggestions, and documentation
type UIForgeError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *UIForgeError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *UIForgeError) Unwrap() error {
	return e.Cause
}

// Is matches any UIForgeError with the same code, so a bare
// New(code, msg) value can serve as a sentinel for errors.Is.
func (e *UIForgeError) Is(target error) bool {
	t, ok := target.(*UIForgeError)
	return ok && t.Code == e.Code
}

// New creates a new UIForgeError
func New(code ErrorCode, message string) *UIForgeError {
	return &UIForgeError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new UIForgeError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *UIForgeError {
	return &UIForgeError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *UIForgeError) WithSuggestion(suggestion string) *UIForgeError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *UIForgeError) WithSuggestions(suggestions ...string) *UIForgeError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *UIForgeError) WithDocs(url string) *UIForgeError {
	e.DocsURL = url
	return e
}

// CodeOf returns the code of the first UIForgeError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var ufErr *UIForgeError
	if errors.As(err, &ufErr) {
		return ufErr.Code
	}
	return ""
}

// HasCode reports whether err's chain carries the given code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var ufErr *UIForgeError
		if !errors.As(err, &ufErr) {
			return false
		}
		if ufErr.Code == code {
			return true
		}
		err = ufErr.Cause
	}
	return false
}

// Common error constructors for frequently used errors

// NewPlanInvalidError creates a plan validation error
func NewPlanInvalidError(cause error) *UIForgeError {
	return Wrap(ErrCodePlanInvalid, "invalid ui plan", cause).
		WithSuggestion("Run 'uiforge validate <plan.json>' to see the offending path").
		WithSuggestion("Only the 13 supported node kinds are accepted")
}

// NewPlannerSyntaxError creates the error raised when both planner attempts returned non-JSON text
func NewPlannerSyntaxError(cause error) *UIForgeError {
	return Wrap(ErrCodePlannerSyntax, "planner failed to produce valid JSON", cause).
		WithSuggestion("Try rephrasing the instruction").
		WithSuggestion("Use a larger model if the current one keeps wrapping output in prose")
}

// NewOracleTransportError creates an oracle transport error
func NewOracleTransportError(provider string, cause error) *UIForgeError {
	return Wrap(ErrCodeOracleTransport, fmt.Sprintf("oracle request failed for provider: %s", provider), cause).
		WithSuggestion("Check that the provider endpoint is reachable").
		WithSuggestion("Run 'uiforge version' and verify the configured provider")
}

// NewOracleConfigError creates an oracle configuration error
func NewOracleConfigError(details string) *UIForgeError {
	return New(ErrCodeOracleConfig, fmt.Sprintf("invalid oracle configuration: %s", details)).
		WithSuggestion("Check the oracle section of your uiforge.yaml")
}

// NewRequestInvalidError creates a bad request error
func NewRequestInvalidError(details string) *UIForgeError {
	return New(ErrCodeRequestInvalid, details)
}

// NewVersionNotFoundError creates a missing session version error
func NewVersionNotFoundError(id string) *UIForgeError {
	return New(ErrCodeVersionNotFound, fmt.Sprintf("version not found: %s", id))
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *UIForgeError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *UIForgeError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
