// Package exitcode maps command failures to process exit statuses.
package exitcode

import (
	stderrors "errors"
	"os"

	"github.com/felixgeelhaar/uiforge/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage or an invalid request
	UsageError = 2

	// InvalidPlan indicates a plan failed validation
	InvalidPlan = 3

	// PlannerFailed indicates the oracle never produced parseable JSON
	PlannerFailed = 4

	// AuthError indicates missing or rejected oracle credentials
	AuthError = 5

	// NetworkError indicates the oracle or a registry could not be reached
	NetworkError = 6

	// BundleError indicates a bundle could not be exported or imported
	BundleError = 7

	// Interrupted indicates the user cancelled with SIGINT or SIGTERM
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode returns the exit code for the first coded error in
// err's chain. Uncoded errors map to GeneralError.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var usage *UsageErr
	if stderrors.As(err, &usage) {
		return UsageError
	}

	switch errors.CodeOf(err) {
	case errors.ErrCodeRequestInvalid, errors.ErrCodeRequestMode:
		return UsageError
	case errors.ErrCodePlanInvalid, errors.ErrCodeFileUnmarshal:
		return InvalidPlan
	case errors.ErrCodePlannerSyntax:
		return PlannerFailed
	case errors.ErrCodeOracleConfig:
		return AuthError
	case errors.ErrCodeOracleTransport:
		return NetworkError
	case errors.ErrCodeBundlePush, errors.ErrCodeBundlePull, errors.ErrCodeBundleInvalid:
		return BundleError
	default:
		return GeneralError
	}
}

// UsageErr marks argument and flag mistakes detected by commands.
type UsageErr struct {
	Err error
}

func (e *UsageErr) Error() string { return e.Err.Error() }
func (e *UsageErr) Unwrap() error { return e.Err }

// Usage wraps err as a usage error
func Usage(err error) error {
	return &UsageErr{Err: err}
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags, arguments or request)"
	case InvalidPlan:
		return "Invalid UI plan"
	case PlannerFailed:
		return "Planner failed to produce valid JSON"
	case AuthError:
		return "Oracle configuration or credential error"
	case NetworkError:
		return "Network error"
	case BundleError:
		return "Bundle error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
