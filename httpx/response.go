// Package httpx writes JSON responses and maps application errors onto
// status codes.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sintocheck/sintocheck-api/internal/apperr"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

var conflictStatus = http.StatusConflict

// SetConflictStatus selects the status used for Conflict errors. Legacy
// clients expect 400; everything else gets 409.
func SetConflictStatus(status int) { conflictStatus = status }

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// avoid writing partial JSON
			http.Error(w, `{"message":"Internal server error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Message: msg, Details: details})
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindAuthenticationFailed:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return conflictStatus
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as an ErrorResponse. Internal causes are logged, never sent.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.As(err)
	status := StatusOf(e)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	}
	JSONError(w, status, e.Message, e.Details)
}
