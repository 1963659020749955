package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/service/auth"
	"github.com/ascendapp/ascend-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"foreign resource", domain.ErrUnauthorized, http.StatusForbidden},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"generic not found", store.ErrNotFound, http.StatusNotFound},
		{"already completed", store.ErrCompletionExists, http.StatusConflict},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"validation failure", domain.ErrValidation, http.StatusBadRequest},
		{"bad quality", domain.ErrInvalidQuality, http.StatusBadRequest},
		{"bad id", domain.ErrInvalidID, http.StatusBadRequest},
		{"wrapped sentinel", fmt.Errorf("failed to get task: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "Task already completed", GetSafeErrorMessage(store.ErrCompletionExists))
	assert.Equal(t, "Quality must be between 0 and 5", GetSafeErrorMessage(domain.ErrInvalidQuality))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	// Wrapped errors resolve through errors.Is, and the raw message never
	// leaks through.
	wrapped := fmt.Errorf("pq: relation %q: %w", "user_progressions", store.ErrProgressionNotFound)
	assert.Equal(t, "Progression not found", GetSafeErrorMessage(wrapped))
	assert.NotContains(t, GetSafeErrorMessage(wrapped), "pq:")
}
