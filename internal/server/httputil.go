package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/log"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *log.Logger, status int, code errors.ErrorCode, message string) {
	writeJSON(w, logger, status, ErrorResponse{Error: message, Code: string(code)})
}

// statusFor maps a coded error to its HTTP status.
func statusFor(err error) int {
	switch errors.CodeOf(err) {
	case errors.ErrCodeRequestInvalid, errors.ErrCodeRequestMode:
		return http.StatusBadRequest
	case errors.ErrCodePlanInvalid, errors.ErrCodePlannerSyntax:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeOracleTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// messageFor renders err on one line, without the suggestions block.
func messageFor(err error) string {
	var ufErr *errors.UIForgeError
	if !stderrors.As(err, &ufErr) {
		return "Agent failed to generate UI. See server logs for details."
	}
	if ufErr.Cause == nil {
		return ufErr.Message
	}
	return ufErr.Message + ": " + ufErr.Cause.Error()
}
