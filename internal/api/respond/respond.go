// Package respond centralizes response envelope writing. Success
// payloads are plain JSON; failures carry a stable message, optional
// per-field errors, and a detail string only outside production so
// internal errors never leak to clients.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatherkit/server/internal/domain/validate"
	"github.com/rs/zerolog"
)

const contentType = "application/json"

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Detail  string            `json:"detail,omitempty"`
}

// JSON writes a success payload.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error writes a failure envelope and logs the underlying error with
// the request-scoped logger: warn for 4xx, error for 5xx.
func Error(w http.ResponseWriter, r *http.Request, status int, message string, err error, env string) {
	body := errorBody{Message: message}

	var fields validate.FieldErrors
	if errors.As(err, &fields) {
		body.Errors = fields
	}

	if err != nil && (env == "development" || env == "test") {
		body.Detail = err.Error()
	}

	if err != nil && r != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Invalid writes a 400 for a malformed or failed-validation request.
func Invalid(w http.ResponseWriter, r *http.Request, err error, env string) {
	Error(w, r, http.StatusBadRequest, "Invalid request", err, env)
}

// ServerError writes the generic 500 envelope.
func ServerError(w http.ResponseWriter, r *http.Request, err error, env string) {
	Error(w, r, http.StatusInternalServerError, "Internal server error", err, env)
}
