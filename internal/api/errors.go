package api

import (
	"errors"
	"net/http"

	"github.com/ascendapp/ascend-api/internal/api/shared"
	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/service/auth"
	"github.com/ascendapp/ascend-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, store.ErrReviewItemNotFound),
		errors.Is(err, store.ErrProgressionNotFound),
		errors.Is(err, store.ErrStreakNotFound),
		errors.Is(err, store.ErrChallengeNotFound),
		errors.Is(err, store.ErrUnlockNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrCompletionExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidQuality),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "You do not own this resource"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrReviewItemNotFound):
		return "Review item not found"

	case errors.Is(err, store.ErrProgressionNotFound):
		return "Progression not found"

	case errors.Is(err, store.ErrStreakNotFound):
		return "Streak not found"

	case errors.Is(err, store.ErrChallengeNotFound):
		return "Challenge not found"

	case errors.Is(err, store.ErrUnlockNotFound):
		return "Achievement unlock not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrCompletionExists):
		return "Task already completed"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, domain.ErrInvalidQuality):
		return "Quality must be between 0 and 5"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid input"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps an internal error to a status code and sanitized
// message and writes the response, logging the full error server-side. An
// explicit userMessage overrides the mapped one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
