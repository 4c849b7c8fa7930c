// Package service holds the business rules of the review API.
//
// Services sit between the HTTP handlers and the repositories:
//
//	handler (HTTP) → service (rules, validation) → repository (storage)
//
// They never see HTTP types. Failures the client caused come back as
// *apperror.AppError values (validation, parameter, not found, auth);
// anything else is a store failure the handler reports as an internal
// error.
package service

import (
	"errors"
	"time"

	"github.com/sakif/review-board/internal/apperror"
)

// Clock returns the time used for created/updated stamps.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

func isNotFound(err error) bool {
	return errors.Is(err, apperror.ErrNotFound)
}
