package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budget/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetCurrentUserID(c)})
	})
	return r
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})

	token, err := GenerateToken(7, "alice", time.Hour)
	require.NoError(t, err)

	w := request(newProtectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})

	w := request(newProtectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})

	w := request(newProtectedRouter(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})

	w := request(newProtectedRouter(), "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})

	token, err := GenerateToken(7, "alice", -time.Minute)
	require.NoError(t, err)

	w := request(newProtectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestParseToken_RoundTrip(t *testing.T) {
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})

	token, err := GenerateToken(7, "alice", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseToken_WrongSecret(t *testing.T) {
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})
	token, err := GenerateToken(7, "alice", time.Hour)
	require.NoError(t, err)

	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "other-secret"}})
	_, err = ParseToken(token)
	assert.Error(t, err)
}
