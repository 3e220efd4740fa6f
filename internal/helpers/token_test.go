package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedTestToken builds a token the JWKS endpoint cannot vouch for.
func signedTestToken(t *testing.T) string {
	t.Helper()
	claims := &CustomClaims{
		Role:  "authenticated",
		Email: "traveler@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user-1",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("local-secret"))
	require.NoError(t, err)
	return token
}

func TestValidateTokenRequiresSupabaseURL(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")

	_, err := ValidateToken(signedTestToken(t))
	assert.Error(t, err)
}

func TestValidateTokenFallbackParsesClaimsInDevelopment(t *testing.T) {
	// JWKS endpoint is down, so validation falls back to unverified parsing.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	t.Setenv("SUPABASE_URL", server.URL)
	t.Setenv("ENVIRONMENT", "development")

	claims, err := ValidateToken(signedTestToken(t))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "traveler@example.com", claims.Email)
	assert.Equal(t, "authenticated", claims.Role)
}

func TestValidateTokenRejectsFallbackInProduction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	t.Setenv("SUPABASE_URL", server.URL)
	t.Setenv("ENVIRONMENT", "production")

	_, err := ValidateToken(signedTestToken(t))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWKS")
}

func TestValidateTokenFallbackRejectsGarbage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	t.Setenv("SUPABASE_URL", server.URL)
	t.Setenv("ENVIRONMENT", "development")

	_, err := ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
