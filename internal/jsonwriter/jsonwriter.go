// Package jsonwriter writes JSON responses and the fixed error envelopes
// handlers return to callers. Internal error detail never goes into these
// bodies; handlers log it and send a generic message instead.
package jsonwriter

import (
	"encoding/json"
	"net/http"

	"github.com/dgellow/canva-front/internal/log"
)

// Error codes surfaced to callers.
const (
	ErrInvalidState        = "invalid_state"
	ErrMissingParameter    = "missing_parameter"
	ErrTokenExchangeFailed = "token_exchange_failed"
	ErrNotAuthenticated    = "not_authenticated"
	ErrUpstreamUnreachable = "upstream_unreachable"
)

// ErrorResponse represents a standard JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	AuthURL string `json:"authUrl,omitempty"`
}

// WriteResponse writes a JSON response with the given status code
func WriteResponse(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.LogError("Failed to encode JSON response: %v", err)
		return err
	}
	return nil
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, statusCode int, code string, message string) {
	response := ErrorResponse{
		Error:   code,
		Message: message,
	}

	if err := WriteResponse(w, statusCode, response); err != nil {
		// Fallback to plain text error if JSON encoding fails
		http.Error(w, code+": "+message, statusCode)
	}
}

// WriteNotAuthenticated writes the 401 envelope with a pointer to the login
// endpoint so a calling agent can surface a one-click re-auth link.
func WriteNotAuthenticated(w http.ResponseWriter, authURL string) {
	response := ErrorResponse{
		Error:   ErrNotAuthenticated,
		Message: "Not authenticated. Visit authUrl to connect your Canva account.",
		AuthURL: authURL,
	}

	if err := WriteResponse(w, http.StatusUnauthorized, response); err != nil {
		http.Error(w, response.Error+": "+response.Message, http.StatusUnauthorized)
	}
}

func WriteBadRequest(w http.ResponseWriter, code string, message string) {
	WriteError(w, http.StatusBadRequest, code, message)
}

func WriteUpstreamUnreachable(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, ErrUpstreamUnreachable, "Failed to reach the Canva API")
}
