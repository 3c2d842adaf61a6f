package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserEmail: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authedServer(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := RequesterEmail(r.Context())
		require.True(t, ok)
		seen = email
		w.WriteHeader(http.StatusOK)
	})
	return JWTAuth(testSecret, zap.NewNop())(next), &seen
}

func TestJWTAuth_AttachesRequesterEmail(t *testing.T) {
	h, seen := authedServer(t)

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "fan@example.com"))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fan@example.com", *seen)
}

func TestJWTAuth_MissingToken(t *testing.T) {
	h, _ := authedServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wishlist", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	h, _ := authedServer(t)

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	req.Header.Set("Authorization", "Token abcdef")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_WrongSigningSecret(t *testing.T) {
	h, _ := authedServer(t)

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "fan@example.com"))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	h, _ := authedServer(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserEmail: "fan@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
