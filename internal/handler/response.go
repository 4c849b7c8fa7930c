package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON or writeError, so success bodies
// and error bodies keep one shape across the API.
//
// ERROR FORMAT:
//   {"message": "User not found", "type": "Fetch Error"}
//
// Validation failures also carry the per-field list:
//   {"message": "...", "type": "Validation Error", "details": [{"field": "...", "message": "..."}]}

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/review-board/internal/apperror"
	"github.com/sakif/review-board/internal/auth"
)

// Error types reported in the "type" field that have no sentinel of their own.
const (
	typeInternal = "Internal Error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string                    `json:"message"`
	Type    string                    `json:"type"`
	Details []apperror.FieldViolation `json:"details,omitempty"`
}

// errInvalidBody is returned by decodeJSON for bodies that are not a JSON object.
var errInvalidBody = apperror.ValidationFailed("", "invalid JSON body")

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps an error to its status code and writes the error body.
//
// errors.Is walks the whole chain, so a service error wrapped with
// fmt.Errorf("...: %w", apperror.Param(...)) still maps to 400.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Message: err.Error(),
			Type:    typeInternal,
		})
		return
	}

	status, errType := classify(err)
	writeJSON(w, status, ErrorResponse{
		Message: appErr.Message,
		Type:    errType,
		Details: appErr.Violations,
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, apperror.ErrValidation.Error()
	case errors.Is(err, apperror.ErrParam):
		return http.StatusBadRequest, apperror.ErrParam.Error()
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, apperror.ErrNotFound.Error()
	case errors.Is(err, apperror.ErrUnauthorized):
		// Bad credentials are reported as a validation failure, as the
		// session gate does.
		return http.StatusUnauthorized, apperror.ErrValidation.Error()
	default:
		return http.StatusInternalServerError, typeInternal
	}
}

// decodeJSON reads a JSON object body into dst. An empty body leaves dst
// untouched so that a missing id surfaces as a parameter error rather than a
// decoding error.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	default:
		return errInvalidBody
	}
}

// callerID returns the id of the authenticated user, or "" on public routes.
func callerID(r *http.Request) string {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

// fail writes err and logs it when it is not a client error.
func fail(logger *slog.Logger, w http.ResponseWriter, op string, err error) {
	if !isClientError(err) {
		logger.Error("request failed",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
	}
	writeError(w, err)
}

// idRequest is the body of update and delete calls, which carry the target
// record id as "_id".
type idRequest struct {
	ID string `json:"_id"`
}

func isClientError(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr)
}
