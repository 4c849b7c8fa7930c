package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/review-board/internal/apperror"
	"github.com/sakif/review-board/internal/auth"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantType    string
		wantMessage string
	}{
		{"validation", apperror.ValidationFailed("userName", "taken"), http.StatusBadRequest, "Validation Error", "taken"},
		{"param", apperror.Param("Missing Id parameter"), http.StatusBadRequest, "Parameter Error", "Missing Id parameter"},
		{"not found", apperror.NotFound("User not found"), http.StatusNotFound, "Fetch Error", "User not found"},
		{"unauthorized", apperror.Unauthorized("nope"), http.StatusUnauthorized, "Validation Error", "nope"},
		{
			"wrapped param", fmt.Errorf("service: %w", apperror.Param("Review Not Found")),
			http.StatusBadRequest, "Parameter Error", "Review Not Found",
		},
		{"internal keeps message", errors.New("sqlite: disk I/O error"), http.StatusInternalServerError, "Internal Error", "sqlite: disk I/O error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantType, body.Type)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestWriteError_IncludesViolations(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apperror.Invalid([]apperror.FieldViolation{
		{Field: "userName", Message: `"userName" is required`},
		{Field: "role", Message: `"role" is required`},
	}))

	assert.JSONEq(t, `{
		"message": "\"userName\" is required, \"role\" is required",
		"type": "Validation Error",
		"details": [
			{"field": "userName", "message": "\"userName\" is required"},
			{"field": "role", "message": "\"role\" is required"}
		]
	}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type target struct {
		ID string `json:"_id"`
	}

	tests := []struct {
		name    string
		body    string
		wantID  string
		wantErr bool
	}{
		{name: "object", body: `{"_id":"abc"}`, wantID: "abc"},
		{name: "empty body", body: ""},
		{name: "unknown keys ignored", body: `{"_id":"abc","extra":1}`, wantID: "abc"},
		{name: "array", body: `[1]`, wantErr: true},
		{name: "garbage", body: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var got target
			err := decodeJSON(r, &got)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperror.ErrValidation))
				assert.Equal(t, "invalid JSON body", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestCallerID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, callerID(r))

	r = r.WithContext(auth.WithUserID(r.Context(), "user-1"))
	assert.Equal(t, "user-1", callerID(r))
}
