package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := gin.New()
	router.Use(LoginRateLimitMiddleware(ctx, rps, burst, slog.Default()))
	router.POST("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func postLogin(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	router.ServeHTTP(w, req)
	return w
}

func TestLoginRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	router := newRateLimitedRouter(t, 10.0, 20)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, postLogin(router, "").Code)
	}
}

func TestLoginRateLimitMiddleware_BlocksRequestsExceedingBurst(t *testing.T) {
	router := newRateLimitedRouter(t, 0.5, 2)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, postLogin(router, "").Code, "request %d should succeed", i+1)
	}

	w := postLogin(router, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	assert.Contains(t, w.Body.String(), "Too many login attempts")
}

func TestLoginRateLimitMiddleware_IndependentLimitsPerIP(t *testing.T) {
	router := newRateLimitedRouter(t, 1.0, 1)

	assert.Equal(t, http.StatusOK, postLogin(router, "192.168.1.100:12345").Code)
	assert.Equal(t, http.StatusTooManyRequests, postLogin(router, "192.168.1.100:12346").Code)
	assert.Equal(t, http.StatusOK, postLogin(router, "192.168.1.101:12345").Code)
}

func TestLoginLimiterStore_EvictIdle(t *testing.T) {
	store := &loginLimiterStore{rps: 10.0, burst: 20}

	store.getLimiter("10.0.0.1")
	store.getLimiter("10.0.0.2")

	val, ok := store.limiters.Load("10.0.0.1")
	assert.True(t, ok)
	entry := val.(*loginLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = time.Now().Add(-2 * time.Hour)
	entry.mu.Unlock()

	store.evictIdle(time.Now().Add(-time.Hour))

	_, ok = store.limiters.Load("10.0.0.1")
	assert.False(t, ok)
	_, ok = store.limiters.Load("10.0.0.2")
	assert.True(t, ok)
}

func TestLoginLimiterStore_SameLimiterPerIP(t *testing.T) {
	store := &loginLimiterStore{rps: 1.0, burst: 1}

	assert.Same(t, store.getLimiter("10.0.0.1"), store.getLimiter("10.0.0.1"))
	assert.NotSame(t, store.getLimiter("10.0.0.1"), store.getLimiter("10.0.0.2"))
}
