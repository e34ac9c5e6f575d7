package transport

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
)

// MapError translates a domain error into an HTTP status, an error code and a
// client-facing message. Unknown errors never leak their text.
func MapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, model.ErrInvalidUsername):
		return http.StatusBadRequest, "INVALID_USERNAME", "Username is required and must be a string"
	case errors.Is(err, model.ErrEmptyUsername):
		return http.StatusBadRequest, "EMPTY_USERNAME", "Username cannot be empty"
	case errors.Is(err, model.ErrMissingUsername):
		return http.StatusBadRequest, "MISSING_USERNAME", "Username is required"
	case errors.Is(err, model.ErrBadHandleFormat):
		return http.StatusBadRequest, "INVALID_USERNAME_FORMAT", "Invalid username format"
	case errors.Is(err, model.ErrNoUsernames):
		return http.StatusBadRequest, "INVALID_USERNAMES", "At least one username is required"
	case errors.Is(err, model.ErrTooManyUsernames):
		return http.StatusBadRequest, "TOO_MANY_USERNAMES", "Too many usernames in one request"
	case errors.Is(err, model.ErrProfileNotFound):
		return http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found"
	case errors.Is(err, model.ErrNoProfileData):
		return http.StatusUnprocessableEntity, "EXTRACTION_FAILED", "Unable to extract profile data"
	case errors.Is(err, model.ErrSourcesExhausted):
		return http.StatusServiceUnavailable, "SOURCES_UNAVAILABLE", "Instagram service temporarily unavailable"
	case errors.Is(err, model.ErrDatabase):
		return http.StatusInternalServerError, "DATABASE_ERROR", "Database error occurred"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "Request timed out"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}

// Error logs err and writes the mapped failure envelope.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := MapError(err)

	log := observability.GetLogger(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request_failed", zap.String("code", code), zap.Error(err))
	} else {
		log.Warn("request_rejected", zap.String("code", code), zap.Error(err))
	}

	WriteError(w, status, code, message)
}
