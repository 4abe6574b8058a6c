package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/mood-lantern/internal/apperror"
)

func TestWriteError_Mapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantKind    string
		wantMessage string
		wantField   string
	}{
		{
			name:        "validation",
			err:         apperror.ValidationFailed("color", "color must be between 1 and 5"),
			wantStatus:  http.StatusBadRequest,
			wantKind:    "validation_error",
			wantMessage: "color must be between 1 and 5",
			wantField:   "color",
		},
		{
			name:        "unauthenticated",
			err:         apperror.Unauthenticated("invalid email or password"),
			wantStatus:  http.StatusUnauthorized,
			wantKind:    "unauthenticated",
			wantMessage: "invalid email or password",
		},
		{
			name:        "not found through a wrapping service error",
			err:         fmt.Errorf("service/checkin: loading day: %w", apperror.NotFound("check-in", "2024-05-01")),
			wantStatus:  http.StatusNotFound,
			wantKind:    "not_found",
			wantMessage: "check-in not found with id 2024-05-01",
		},
		{
			name:       "conflict",
			err:        apperror.Conflict("user", "a@example.com"),
			wantStatus: http.StatusConflict,
			wantKind:   "conflict",
		},
		{
			name:        "invalid reference",
			err:         apperror.InvalidReference("question", "999"),
			wantStatus:  http.StatusUnprocessableEntity,
			wantKind:    "invalid_reference",
			wantMessage: "unknown question 999",
			wantField:   "question",
		},
		{
			name:        "storage hides driver text",
			err:         apperror.Storage("saving check-in", errors.New("UNIQUE constraint failed: secret_table.col")),
			wantStatus:  http.StatusServiceUnavailable,
			wantKind:    "storage_unavailable",
			wantMessage: "the record store is temporarily unavailable",
		},
		{
			name:        "unknown error",
			err:         errors.New("boom at /var/lib/lantern.db"),
			wantStatus:  http.StatusInternalServerError,
			wantKind:    "internal_error",
			wantMessage: "an internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantKind, body.Error)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body.Message)
			}
			assert.Equal(t, tt.wantField, body.Field)
		})
	}
}

func TestValidateStruct_FieldNames(t *testing.T) {
	err := validateStruct(&checkInRequest{})
	assert.NoError(t, err, "an empty answer list is allowed")

	req := registerRequest{Name: "A", Email: "not-an-email", Password: "secret123"}
	err = validateStruct(&req)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "email", appErr.Field)
	assert.Contains(t, appErr.Message, "valid email")
}
