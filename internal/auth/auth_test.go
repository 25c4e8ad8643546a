package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithCookie(token string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	return r
}

func TestAuthenticator_AdminKeyHeader(t *testing.T) {
	a := NewAuthenticator("topsecret", "", zerolog.Nop())

	r := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	r.Header.Set(AdminKeyHeader, "topsecret")
	assert.True(t, a.IsAdmin(r))

	r = httptest.NewRequest(http.MethodPost, "/api/products", nil)
	r.Header.Set(AdminKeyHeader, "wrong")
	assert.False(t, a.IsAdmin(r))

	// No header, no cookie.
	assert.False(t, a.IsAdmin(httptest.NewRequest(http.MethodPost, "/api/products", nil)))
}

func TestAuthenticator_EmptyAdminKeyNeverMatches(t *testing.T) {
	a := NewAuthenticator("", "jwt-secret", zerolog.Nop())

	r := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	r.Header.Set(AdminKeyHeader, "")
	assert.False(t, a.IsAdmin(r))
}

func TestAuthenticator_SessionToken(t *testing.T) {
	a := NewAuthenticator("", "jwt-secret", zerolog.Nop())

	t.Run("Admin role grants access", func(t *testing.T) {
		token, err := a.GenerateToken("admin", time.Hour)
		require.NoError(t, err)
		assert.True(t, a.IsAdmin(requestWithCookie(token)))
	})

	t.Run("Non-admin role is refused", func(t *testing.T) {
		token, err := a.GenerateToken("customer", time.Hour)
		require.NoError(t, err)
		assert.False(t, a.IsAdmin(requestWithCookie(token)))
	})

	t.Run("Expired token is refused", func(t *testing.T) {
		token, err := a.GenerateToken("admin", -time.Minute)
		require.NoError(t, err)
		assert.False(t, a.IsAdmin(requestWithCookie(token)))
	})

	t.Run("Garbage token is refused", func(t *testing.T) {
		assert.False(t, a.IsAdmin(requestWithCookie("not.a.token")))
	})

	t.Run("Token signed with another secret is refused", func(t *testing.T) {
		other := NewAuthenticator("", "different-secret", zerolog.Nop())
		token, err := other.GenerateToken("admin", time.Hour)
		require.NoError(t, err)
		assert.False(t, a.IsAdmin(requestWithCookie(token)))
	})
}

func TestAuthenticator_NoJWTSecretConfigured(t *testing.T) {
	a := NewAuthenticator("key-only", "", zerolog.Nop())

	_, err := a.GenerateToken("admin", time.Hour)
	assert.Error(t, err)

	// A session cookie cannot grant access when the secret is absent.
	assert.False(t, a.IsAdmin(requestWithCookie("anything")))
}
