package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mascot-logo-backend/internal/middleware"
)

type fakeAllower struct {
	allowed    bool
	err        error
	identities []string
}

func (f *fakeAllower) Allow(_ context.Context, identity string, _ int) (bool, error) {
	f.identities = append(f.identities, identity)
	return f.allowed, f.err
}

func newLimitedRouter(allower *fakeAllower, jwtSecret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/generate-image",
		middleware.RateLimit(allower, 4, jwtSecret, zap.NewNop()),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "success"}) },
	)
	return router
}

func TestRateLimit_Admitted(t *testing.T) {
	allower := &fakeAllower{allowed: true}
	router := newLimitedRouter(allower, "")

	req, _ := http.NewRequest("POST", "/generate-image", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_Rejected(t *testing.T) {
	allower := &fakeAllower{allowed: false}
	router := newLimitedRouter(allower, "")

	req, _ := http.NewRequest("POST", "/generate-image", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Rate limit exceeded"}`, w.Body.String())
}

func TestRateLimit_LimiterFailure(t *testing.T) {
	allower := &fakeAllower{err: fmt.Errorf("redis down")}
	router := newLimitedRouter(allower, "")

	req, _ := http.NewRequest("POST", "/generate-image", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimit_IdentityFromIP(t *testing.T) {
	allower := &fakeAllower{allowed: true}
	router := newLimitedRouter(allower, "")

	req, _ := http.NewRequest("POST", "/generate-image", nil)
	req.RemoteAddr = "203.0.113.9:51000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Len(t, allower.identities, 1)
	assert.Equal(t, "203.0.113.9", allower.identities[0])
}

func TestRateLimit_IdentityFromJWTSubject(t *testing.T) {
	secret := "test-secret"
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-42"})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	allower := &fakeAllower{allowed: true}
	router := newLimitedRouter(allower, secret)

	req, _ := http.NewRequest("POST", "/generate-image", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Len(t, allower.identities, 1)
	assert.Equal(t, "user-42", allower.identities[0])
}

func TestRateLimit_BadTokenFallsBackToIP(t *testing.T) {
	allower := &fakeAllower{allowed: true}
	router := newLimitedRouter(allower, "test-secret")

	req, _ := http.NewRequest("POST", "/generate-image", nil)
	req.RemoteAddr = "203.0.113.9:51000"
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, allower.identities, 1)
	assert.Equal(t, "203.0.113.9", allower.identities[0])
}
