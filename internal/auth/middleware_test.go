package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-be/internal/apperr"
)

type stubVerifier struct {
	claims *Claims
	err    error
}

func (s *stubVerifier) Verify(string) (*Claims, error) {
	return s.claims, s.err
}

func testReject(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.KindOf(err).Status())
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func runGuard(t *testing.T, verifier TokenVerifier, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		identity, ok := IdentityFrom(r.Context())
		require.True(t, ok)
		w.Write([]byte(identity.UserID))
	})

	guard := NewGuard(verifier, testReject)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	guard.Middleware(next).ServeHTTP(rec, req)
	return rec, handlerCalled
}

func TestGuardMissingToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called := runGuard(t, &stubVerifier{}, tt.header)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "no token provided")
		})
	}
}

func TestGuardInvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: apperr.Authentication("invalid token")}
	rec, called := runGuard(t, verifier, "Bearer bad-token")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestGuardExpiredToken(t *testing.T) {
	codec := NewTokenCodec("test-secret", 0, time.Hour)
	token, err := codec.IssueAccess(testUser)
	require.NoError(t, err)
	codec.now = func() time.Time { return time.Now().Add(time.Second) }

	rec, called := runGuard(t, codec, "Bearer "+token)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestGuardUnexpectedFailureMapsToForbidden(t *testing.T) {
	// An unclassified verifier failure falls back to a 403, matching
	// the original service's catch-all.
	verifier := &stubVerifier{err: errors.New("clock service unavailable")}
	rec, called := runGuard(t, verifier, "Bearer some-token")

	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
	assert.NotContains(t, rec.Body.String(), "clock service")
}

func TestGuardValidTokenAttachesIdentity(t *testing.T) {
	verifier := &stubVerifier{claims: &Claims{UserID: "user-123", Email: "jo@example.com"}}
	rec, called := runGuard(t, verifier, "Bearer good-token")

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-123", rec.Body.String())
}

func TestIdentityFromAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := IdentityFrom(req.Context())
	assert.False(t, ok)
}
