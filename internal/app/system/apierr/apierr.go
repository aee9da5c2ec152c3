// Package apierr defines the error taxonomy used across the API and the
// boundary translation to JSON responses.
//
// Handlers and stores return or wrap these errors; the HTTP layer calls
// Write exactly once per failed request, which maps the error to a status
// code and a {"message": ...} body. Unknown errors become 500 with a
// generic message so internals never leak to clients.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Error is an API error carrying the HTTP status to respond with.
type Error struct {
	Status  int
	Message string
	Err     error // optional underlying cause, not exposed to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports missing or malformed input (400).
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Auth reports a missing, invalid, or expired credential (401).
func Auth(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// Forbidden reports an authenticated but unpermitted request (403).
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

// NotFound reports an absent entity (404).
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Conflict reports a uniqueness violation (409).
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

// MediaUpload reports a blob-store failure (502).
func MediaUpload(msg string, cause error) *Error {
	return &Error{Status: http.StatusBadGateway, Message: msg, Err: cause}
}

// Internal wraps an unexpected failure (500).
func Internal(msg string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg, Err: cause}
}

// body is the JSON error envelope.
type body struct {
	Message string `json:"message"`
}

// Write translates err into the JSON error response. Non-*Error values
// are treated as internal errors and logged with their cause.
func Write(w http.ResponseWriter, log *zap.Logger, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = &Error{Status: http.StatusInternalServerError, Message: "internal server error", Err: err}
	}
	if ae.Status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed", zap.Int("status", ae.Status), zap.Error(err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ae.Status)
	_ = json.NewEncoder(w).Encode(body{Message: ae.Message})
}

// JSON writes v as the success response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
