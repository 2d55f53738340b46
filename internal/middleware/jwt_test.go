package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-api/internal/models"
	"github.com/studytrack/studytrack-api/internal/service"
)

func signTestToken(t *testing.T, secret string) string {
	t.Helper()
	claims := models.JWTClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func runJWT(t *testing.T, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService("test-secret", "")

	reached := false
	r := gin.New()
	r.GET("/protected", JWT(tokens), func(c *gin.Context) {
		_, reached = c.Get(ContextUserKey)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/protected", nil)
	require.NoError(t, err)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w, reached
}

func TestJWTAllowsValidToken(t *testing.T) {
	w, reached := runJWT(t, "Bearer "+signTestToken(t, "test-secret"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
}

func TestJWTMissingHeader(t *testing.T) {
	w, reached := runJWT(t, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}

func TestJWTMalformedHeader(t *testing.T) {
	w, reached := runJWT(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}

func TestJWTWrongSecret(t *testing.T) {
	w, reached := runJWT(t, "Bearer "+signTestToken(t, "other-secret"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}
