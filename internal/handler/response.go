// Package handler translates HTTP requests into service calls and service
// results into JSON responses. Handlers know about status codes, path
// parameters and envelopes; they know nothing about SQL.
package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON or writeError, so the wire format
// is decided in one place.
//
// CONSISTENT ERROR FORMAT:
//
//	{"error": "not_found", "message": "planet not found with id 7"}
//
// The "error" field is machine-readable; "message" is for humans.

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/sakif/starwars-api/internal/apperror"
)

// maxBodyBytes caps request bodies. Every payload of this API is a handful of
// short fields.
const maxBodyBytes = 1 << 20

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable error type, e.g. "not_found"
	Message string `json:"message"` // human-readable description
}

// Success envelopes.
type (
	resultResponse struct {
		Result any `json:"result"`
	}
	createdResponse struct {
		Msg    string `json:"msg"`
		Result any    `json:"result"`
	}
	updatedResponse struct {
		Message string `json:"message"`
		Result  any    `json:"result"`
	}
	messageResponse struct {
		Message any `json:"message"`
	}
)

var okResponse = messageResponse{Message: "ok"}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set BEFORE the body is written; once Encode
// writes, headers are on the wire and later changes are ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// headers are already sent; all we can do is log
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and sends it.
//
// errors.Is walks the whole chain, so a service returning
// fmt.Errorf("creating planet: %w", apperror.Conflict(...)) still maps to 409.
// Anything that is not an *apperror.AppError is a 500 with a generic message;
// raw errors may carry SQL or file paths and never reach the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status, errorType := http.StatusInternalServerError, "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status, errorType = http.StatusBadRequest, "validation_error"
		case errors.Is(err, apperror.ErrUnauthorized):
			status, errorType = http.StatusUnauthorized, "unauthorized"
		case errors.Is(err, apperror.ErrForbidden):
			status, errorType = http.StatusForbidden, "forbidden"
		case errors.Is(err, apperror.ErrNotFound):
			status, errorType = http.StatusNotFound, "not_found"
		case errors.Is(err, apperror.ErrConflict):
			status, errorType = http.StatusConflict, "conflict"
		}

		writeJSON(w, status, ErrorResponse{Error: errorType, Message: appErr.Message})
		return
	}

	slog.Error("unhandled error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// decodeJSON reads the request body into v. An empty or malformed body is a
// validation error (400), never a 500.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.ValidationFailed("body", "request body is required")
		}
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return apperror.ValidationFailed("body", "request body is too large")
		}
		return apperror.ValidationFailed("body", fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}

// pathID reads the {id} URL parameter. Anything that is not a positive
// integer cannot name a row, so it is NotFound rather than BadRequest.
func pathID(r *http.Request, resource string) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NotFound(resource, raw)
	}
	return id, nil
}
