package handler

// RESPONSE HELPERS:
// Every handler sends JSON through writeJSON and every failure through
// writeError, so all endpoints share one response shape:
//
//	{"error": "not_found", "message": "check-in not found with id 2024-05-01"}
//
// The "error" value is a stable machine-readable kind; "message" is for
// humans; "field" is set when a specific request field is at fault.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/mood-lantern/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// writeJSON sends a JSON response with the given status code.
//
// Headers and status must be written before the body: once Encode writes,
// header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// errorKind maps a domain error to its HTTP status and response kind.
// errors.Is walks the whole chain, so a service error such as
// fmt.Errorf("service/checkin: saving: %w", apperror.Storage(...)) still
// matches ErrStorage.
func errorKind(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperror.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, apperror.ErrInvalidReference):
		return http.StatusUnprocessableEntity, "invalid_reference"
	case errors.Is(err, apperror.ErrStorage):
		return http.StatusServiceUnavailable, "storage_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError maps a domain error to the appropriate HTTP status and sends it.
//
// Storage and unknown errors get a fixed message: the underlying text can
// contain SQL, file paths or driver details, and those belong in the logs,
// not in a response.
func writeError(w http.ResponseWriter, err error) {
	status, kind := errorKind(err)

	resp := ErrorResponse{Error: kind}
	var appErr *apperror.AppError

	switch {
	case status == http.StatusServiceUnavailable:
		resp.Message = "the record store is temporarily unavailable"
	case status == http.StatusInternalServerError:
		resp.Message = "an internal error occurred"
	case errors.As(err, &appErr):
		resp.Message = appErr.Message
		resp.Field = appErr.Field
	default:
		resp.Message = http.StatusText(status)
	}

	writeJSON(w, status, resp)
}
