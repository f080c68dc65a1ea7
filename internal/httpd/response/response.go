// Package response shapes the JSON envelopes the API returns, including
// the mapping from the service error taxonomy onto HTTP statuses.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/pkg/logger"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

const (
	CodeInvalidInput   = "INVALID_INPUT"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeNotFound       = "NOT_FOUND"
	CodeNotInitialized = "SERVICE_NOT_INITIALIZED"
	CodeInternalError  = "INTERNAL_ERROR"
)

func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

// FromError maps a service error onto the wire. The provider message is
// surfaced verbatim for client-correctable failures; everything
// unclassified gets a generic message so internals never leak.
func FromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotInitialized):
		WriteError(w, http.StatusServiceUnavailable, "service is not initialized", CodeNotInitialized)
	case errors.Is(err, domain.ErrInvalidCredentials):
		Unauthorized(w, "invalid email or password")
	case errors.Is(err, domain.ErrNotFound):
		NotFound(w, err.Error())
	case domain.IsValidation(err):
		BadRequest(w, err.Error())
	default:
		logger.Error("unexpected service error", "error", err)
		InternalError(w, "something went wrong, please try again")
	}
}
