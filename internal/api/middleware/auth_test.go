package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascendapp/ascend-api/internal/service/auth"
)

// stubJWTService returns canned claims or errors for middleware tests.
type stubJWTService struct {
	claims *auth.Claims
	err    error
}

func (s *stubJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "stub-token", nil
}

func (s *stubJWTService) GenerateServiceToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "stub-service-token", nil
}

func (s *stubJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func runAuth(t *testing.T, svc auth.JWTService, authHeader string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var gotUserID uuid.UUID
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, called = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/progression", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	NewAuthMiddleware(svc).Authenticate(next).ServeHTTP(rec, req)
	return rec, gotUserID, called
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	svc := &stubJWTService{claims: &auth.Claims{UserID: userID}}

	rec, gotUserID, called := runAuth(t, svc, "Bearer good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called, "handler should run for a valid token")
	assert.Equal(t, userID, gotUserID)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()
	rec, _, called := runAuth(t, &stubJWTService{}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Authorization header required", body["error"])
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	t.Parallel()
	for _, header := range []string{"good-token", "Basic dXNlcjpwdw==", "Bearer"} {
		rec, _, called := runAuth(t, &stubJWTService{}, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.False(t, called)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()
	rec, _, called := runAuth(t, &stubJWTService{err: auth.ErrExpiredToken}, "Bearer stale")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Token expired", body["error"])
}

func TestRequireServiceScope(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, scope string) (*httptest.ResponseRecorder, bool) {
		t.Helper()
		svc := &stubJWTService{claims: &auth.Claims{UserID: uuid.New(), Scope: scope}}

		var called bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/xp/award", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()

		handler := NewAuthMiddleware(svc).Authenticate(RequireServiceScope(next))
		handler.ServeHTTP(rec, req)
		return rec, called
	}

	t.Run("user token is rejected", func(t *testing.T) {
		t.Parallel()
		rec, called := run(t, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, called)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Service credentials required", body["error"])
	})

	t.Run("service token passes", func(t *testing.T) {
		t.Parallel()
		rec, called := run(t, auth.ScopeService)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	})
}

func TestAuthenticateInvalidToken(t *testing.T) {
	t.Parallel()
	rec, _, called := runAuth(t, &stubJWTService{err: auth.ErrInvalidToken}, "Bearer junk")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
