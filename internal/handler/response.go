package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// ENVELOPE FORMAT:
// Every API response carries a "success" flag the frontend branches on:
//
//	success:  {"success": true,  "message": "...", ...payload}
//	failure:  {"success": false, "message": "..."}
//	form:     {"success": false, "errors": [{"field": "...", "message": "..."}]}
//
// The "errors" array form is reserved for validation failures — the signup
// and login pages walk it and render each message next to its input field.
// Everything else uses the single-message form.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/campus-portal/internal/apperror"
)

// envelope is the base response shape. Handlers extend it by embedding it
// in a payload struct or by building a map on top of these keys.
type envelope map[string]any

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set BEFORE the body — w.Write() (which Encode
// calls internally) sends them, and changes after that are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already out the door; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status and envelope.
//
// ERROR MAPPING:
// The service layer returns apperror kinds; this is the one place they get
// translated to HTTP. The service layer never knows about status codes.
//
//	ErrValidation         → 400 with the field-error array
//	ErrDuplicateEmail     → 400 ("User with this email already exists")
//	ErrInvalidCredentials → 401 ("Invalid email or password")
//	ErrNotAuthorized      → 401 ("Not authorized")
//	ErrNotFound           → 404
//	anything else         → 500 with a GENERIC message
//
// The generic 500 is deliberate: the raw error might contain SQL fragments
// or file paths, so it goes to the log and never to the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			// Validation with field details renders inline on the form;
			// a single-field failure without details falls back to message.
			if len(appErr.Fields) > 0 {
				writeJSON(w, http.StatusBadRequest, envelope{
					"success": false,
					"errors":  appErr.Fields,
				})
				return
			}
			writeJSON(w, http.StatusBadRequest, envelope{
				"success": false,
				"message": appErr.Message,
			})
			return
		case errors.Is(err, apperror.ErrDuplicateEmail):
			writeJSON(w, http.StatusBadRequest, envelope{
				"success": false,
				"message": appErr.Message,
			})
			return
		case errors.Is(err, apperror.ErrInvalidCredentials),
			errors.Is(err, apperror.ErrNotAuthorized):
			writeJSON(w, http.StatusUnauthorized, envelope{
				"success": false,
				"message": appErr.Message,
			})
			return
		case errors.Is(err, apperror.ErrNotFound):
			writeJSON(w, http.StatusNotFound, envelope{
				"success": false,
				"message": appErr.Message,
			})
			return
		}
	}

	slog.Error("unhandled error reached the HTTP layer", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, envelope{
		"success": false,
		"message": "Something went wrong. Please try again later.",
	})
}

// decodeJSON reads a request body into dst, rejecting malformed payloads
// with a 400-shaped validation error instead of a 500.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "Request body must be valid JSON")
	}
	return nil
}
