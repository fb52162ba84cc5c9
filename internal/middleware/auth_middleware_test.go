package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/nexa-api/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret", 7)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/protected", NewAuthMiddleware(jwtService).RequireAuth(), func(c *gin.Context) {
		userID := c.GetUint("user_id")
		username := c.GetString("username")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "username": username})
	})
	return router, jwtService
}

func performRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	router, _ := newTestRouter(t)
	w := performRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_missing")
}

func TestRequireAuth_BadFormat(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token, err := jwtService.GenerateToken(1, "racer")
	require.NoError(t, err)

	for _, header := range []string{"Basic abc", token, "Bearer"} {
		w := performRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "token_format")
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	router, _ := newTestRouter(t)
	w := performRequest(router, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_invalid")
}

func TestRequireAuth_SignatureFromAnotherSecretRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	foreign, err := auth.NewJWTService("another-secret", 7)
	require.NoError(t, err)
	token, err := foreign.GenerateToken(1, "racer")
	require.NoError(t, err)

	w := performRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_invalid")
}

func TestRequireAuth_ValidTokenSetsIdentity(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token, err := jwtService.GenerateToken(42, "racer")
	require.NoError(t, err)

	w := performRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), `"username":"racer"`)
}
