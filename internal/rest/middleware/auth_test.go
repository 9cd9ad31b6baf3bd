package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/givepoint/givepoint/internal/config"
	"github.com/givepoint/givepoint/internal/logger"
	"github.com/givepoint/givepoint/internal/types"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret, subject, email, name string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"name":  name,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func setupAuthRouter(t *testing.T, cfg *config.Configuration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	router := gin.New()
	router.Use(AuthenticateMiddleware(cfg, log))
	router.GET("/whoami", func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"user_id": types.GetUserID(ctx),
			"email":   types.GetUserEmail(ctx),
			"name":    types.GetDonorName(ctx),
		})
	})
	return router
}

func TestAuthenticateMiddlewareValidToken(t *testing.T) {
	cfg := config.GetDefaultConfig()
	router := setupAuthRouter(t, cfg)

	token := signTestToken(t, cfg.Auth.Secret, "user_1", "alex@example.com", "Alex Donor")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(types.HeaderAuthorization, "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user_1")
	assert.Contains(t, w.Body.String(), "alex@example.com")
	assert.Contains(t, w.Body.String(), "Alex Donor")
}

func TestAuthenticateMiddlewareMissingHeader(t *testing.T) {
	cfg := config.GetDefaultConfig()
	router := setupAuthRouter(t, cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMiddlewareMalformedHeader(t *testing.T) {
	cfg := config.GetDefaultConfig()
	router := setupAuthRouter(t, cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(types.HeaderAuthorization, "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMiddlewareWrongSecret(t *testing.T) {
	cfg := config.GetDefaultConfig()
	router := setupAuthRouter(t, cfg)

	token := signTestToken(t, "other-secret", "user_1", "alex@example.com", "Alex Donor")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(types.HeaderAuthorization, "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMiddlewareExpiredToken(t *testing.T) {
	cfg := config.GetDefaultConfig()
	router := setupAuthRouter(t, cfg)

	claims := jwt.MapClaims{
		"sub": "user_1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Auth.Secret))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(types.HeaderAuthorization, "Bearer "+signed)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
