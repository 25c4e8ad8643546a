// Package auth answers a single question for the product-admin surface:
// is the caller an administrator. Two interchangeable strategies back the
// check, a role claim in a signed session cookie and a shared header key
// for tooling access.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

// AdminKeyHeader is the shared-secret header for non-interactive clients.
const AdminKeyHeader = "X-Admin-Key"

// roleAdmin is the role claim value granting product administration.
const roleAdmin = "admin"

// Authenticator checks administrator capability on inbound requests.
type Authenticator struct {
	adminKey  string
	jwtSecret []byte
	logger    zerolog.Logger
}

// NewAuthenticator creates an authenticator. Either strategy may be
// disabled by leaving its secret empty.
func NewAuthenticator(adminKey, jwtSecret string, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		adminKey:  adminKey,
		jwtSecret: []byte(jwtSecret),
		logger:    logger.With().Str("component", "auth").Logger(),
	}
}

// IsAdmin reports whether the request carries administrator capability,
// through either the header key or a session token with an admin role claim.
func (a *Authenticator) IsAdmin(r *http.Request) bool {
	if a.adminKey != "" && r.Header.Get(AdminKeyHeader) == a.adminKey {
		return true
	}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return false
	}

	role, err := a.parseRole(cookie.Value)
	if err != nil {
		a.logger.Debug().Err(err).Msg("session token rejected")
		return false
	}

	return role == roleAdmin
}

// GenerateToken mints a signed session token carrying the role claim.
func (a *Authenticator) GenerateToken(role string, ttl time.Duration) (string, error) {
	if len(a.jwtSecret) == 0 {
		return "", fmt.Errorf("JWT secret is not configured")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// parseRole validates the token signature and expiry and extracts the role claim.
func (a *Authenticator) parseRole(tokenString string) (string, error) {
	if len(a.jwtSecret) == 0 {
		return "", fmt.Errorf("JWT secret is not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}

	role, _ := claims["role"].(string)
	return role, nil
}
