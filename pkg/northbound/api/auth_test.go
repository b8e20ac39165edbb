package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTServiceRejectsShortSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{Secret: "too-short"})
	require.ErrorIs(t, err, ErrInvalidSecretLength)
}

func TestJWTServiceIssueAndValidateRoundTrip(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)

	token, err := svc.IssueToken("ribdctl")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "ribdctl", claims.ClientID)
}

func TestJWTServiceRejectsExpiredToken(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "0123456789abcdef0123456789abcdef", TokenLifetime: -time.Second})
	require.NoError(t, err)

	token, err := svc.IssueToken("ribdctl")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestRequireBearerAuthRejectsMissingHeader(t *testing.T) {
	svc, _ := NewJWTService(JWTConfig{Secret: "0123456789abcdef0123456789abcdef"})
	h := RequireBearerAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTServiceIssueWithSharedSecretRejectsWrongSecret(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)

	_, _, err = svc.IssueWithSharedSecret("ribdctl", "wrong-secret")
	require.ErrorIs(t, err, ErrBadSharedSecret)
}

func TestJWTServiceIssueWithSharedSecretAcceptsMatchingSecret(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	svc, err := NewJWTService(JWTConfig{Secret: secret})
	require.NoError(t, err)

	token, expiresAt, err := svc.IssueWithSharedSecret("ribdctl", secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, expiresAt.After(time.Now()))

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "ribdctl", claims.ClientID)
}

func TestHashSharedSecretRoundTrip(t *testing.T) {
	hash, err := HashSharedSecret("correct-horse-battery-staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "correct-horse-battery-staple", hash)
}

func TestJWTServiceIssueWithSharedSecretUsesHashWhenConfigured(t *testing.T) {
	hash, err := HashSharedSecret("client-secret")
	require.NoError(t, err)

	svc, err := NewJWTService(JWTConfig{
		Secret:           "0123456789abcdef0123456789abcdef",
		SharedSecretHash: hash,
	})
	require.NoError(t, err)

	// The signing secret itself must no longer work once a hash is set.
	_, _, err = svc.IssueWithSharedSecret("ribdctl", "0123456789abcdef0123456789abcdef")
	require.ErrorIs(t, err, ErrBadSharedSecret)

	token, _, err := svc.IssueWithSharedSecret("ribdctl", "client-secret")
	require.NoError(t, err)
	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "ribdctl", claims.ClientID)
}

func TestRequireBearerAuthAcceptsValidToken(t *testing.T) {
	svc, _ := NewJWTService(JWTConfig{Secret: "0123456789abcdef0123456789abcdef"})
	token, _ := svc.IssueToken("ribdctl")

	var sawClaims bool
	h := RequireBearerAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawClaims = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, sawClaims)
}
