package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig mirrors the teacher's internal/controlplane/api/auth.JWTConfig
// shape, generalized to a single bearer-token audience (a northbound API
// client) instead of distinct access/refresh token types — this API is
// machine-to-machine (CLI, other controllers), not an interactive login
// flow with session refresh.
type JWTConfig struct {
	Secret       string
	Issuer       string
	TokenLifetime time.Duration

	// SharedSecretHash, when set, is a bcrypt hash (see the teacher's
	// pkg/identity.HashPassword) of the pre-shared secret a client must
	// present to /auth/token. It is checked in place of a literal
	// comparison against Secret, so the value operators distribute to
	// clients never needs to be stored in cleartext anywhere the signing
	// key itself lives. Leave empty to compare presented secrets directly
	// against Secret instead.
	SharedSecretHash string
}

// HashSharedSecret bcrypt-hashes a pre-shared secret for JWTConfig.
// SharedSecretHash, mirroring the teacher's identity.HashPassword.
func HashSharedSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

var (
	ErrInvalidSecretLength = errors.New("northbound: JWT secret must be at least 32 characters")
	ErrInvalidToken        = errors.New("northbound: invalid token")
	ErrExpiredToken        = errors.New("northbound: token has expired")
)

// Claims is the JWT claim set issued to northbound API clients.
type Claims struct {
	jwt.RegisteredClaims
	ClientID string `json:"client_id"`
}

type JWTService struct {
	config JWTConfig
}

func NewJWTService(config JWTConfig) (*JWTService, error) {
	if len(config.Secret) < 32 {
		return nil, ErrInvalidSecretLength
	}
	if config.Issuer == "" {
		config.Issuer = "ribd"
	}
	if config.TokenLifetime == 0 {
		config.TokenLifetime = time.Hour
	}
	return &JWTService{config: config}, nil
}

func (s *JWTService) IssueToken(clientID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenLifetime)),
		},
		ClientID: clientID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// ErrBadSharedSecret is returned by IssueWithSharedSecret when the
// presented secret does not match SharedSecretHash (when set) or, failing
// that, the configured signing secret.
var ErrBadSharedSecret = errors.New("northbound: invalid shared secret")

// IssueWithSharedSecret mints a token for clientID once presented is
// confirmed to be the configured pre-shared secret. When SharedSecretHash
// is set, the comparison is a bcrypt check against that hash (the teacher's
// identity.VerifyPassword pattern); otherwise presented is compared to
// Secret directly in constant time. The northbound API is machine-to-
// machine (no user/password store): knowing the pre-shared secret is what
// stands in for a login, matching JWTConfig's doc comment above.
func (s *JWTService) IssueWithSharedSecret(clientID, presented string) (string, time.Time, error) {
	if s.config.SharedSecretHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.config.SharedSecretHash), []byte(presented)); err != nil {
			return "", time.Time{}, ErrBadSharedSecret
		}
	} else if subtle.ConstantTimeCompare([]byte(presented), []byte(s.config.Secret)) != 1 {
		return "", time.Time{}, ErrBadSharedSecret
	}
	token, err := s.IssueToken(clientID)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, time.Now().Add(s.config.TokenLifetime), nil
}

func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type contextKey int

const claimsContextKey contextKey = iota

// RequireBearerAuth is chi-compatible middleware enforcing a valid Bearer
// token on every request it wraps, matching the teacher's
// apiMiddleware.JWTAuth shape.
func RequireBearerAuth(svc *JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			claims, err := svc.Validate(strings.TrimPrefix(header, prefix))
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsContextKey).(*Claims)
	return c, ok
}
