package bundle

import (
	stderrors "errors"
	"fmt"
	"net"
	"net/http"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"

	"github.com/felixgeelhaar/uiforge/internal/errors"
)

// RegistryErrorType categorizes registry failures
type RegistryErrorType string

const (
	ErrTypeAuthentication RegistryErrorType = "AUTHENTICATION"
	ErrTypeNotFound       RegistryErrorType = "NOT_FOUND"
	ErrTypeNetwork        RegistryErrorType = "NETWORK"
	ErrTypePermission     RegistryErrorType = "PERMISSION"
	ErrTypeInvalidRef     RegistryErrorType = "INVALID_REFERENCE"
	ErrTypeUnknown        RegistryErrorType = "UNKNOWN"
)

// Classify returns the category of a registry error.
func Classify(err error) RegistryErrorType {
	var transportErr *transport.Error
	if stderrors.As(err, &transportErr) {
		switch transportErr.StatusCode {
		case http.StatusUnauthorized:
			return ErrTypeAuthentication
		case http.StatusForbidden:
			return ErrTypePermission
		case http.StatusNotFound:
			return ErrTypeNotFound
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return ErrTypeNetwork
		}
		return ErrTypeUnknown
	}

	var nameErr *name.ErrBadName
	if stderrors.As(err, &nameErr) {
		return ErrTypeInvalidRef
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return ErrTypeNetwork
	}

	return ErrTypeUnknown
}

// wrapRegistryError turns a registry failure into a coded error with a
// suggestion matching its category.
func wrapRegistryError(err error, ref string, code errors.ErrorCode, operation string) error {
	if err == nil {
		return nil
	}

	kind := Classify(err)
	ufErr := errors.Wrap(code, fmt.Sprintf("%s %s failed (%s)", operation, ref, kind), err)

	switch kind {
	case ErrTypeAuthentication:
		ufErr.WithSuggestion("Authenticate with 'docker login <registry>'; credentials are read from ~/.docker/config.json")
	case ErrTypePermission:
		ufErr.WithSuggestion(fmt.Sprintf("Check that your account may %s to this repository", operation))
	case ErrTypeNotFound:
		ufErr.WithSuggestion("Check the repository name and tag")
	case ErrTypeInvalidRef:
		ufErr.WithSuggestion("References look like registry.example.com/team/ui:v1")
	case ErrTypeNetwork:
		ufErr.WithSuggestion("Check connectivity to the registry and retry; use --insecure for plain HTTP registries")
	}
	return ufErr
}
