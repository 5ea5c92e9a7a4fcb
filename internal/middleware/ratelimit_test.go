package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(t *testing.T, rl *RateLimiter, requests int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", rl.Limit("test", requests, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func newTestLimiter(t *testing.T) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRateLimiter(client, zerolog.Nop()), mr
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows up to the limit then rejects", func(t *testing.T) {
		rl, _ := newTestLimiter(t)
		router := newLimitedRouter(t, rl, 3)

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("sets rate limit headers", func(t *testing.T) {
		rl, _ := newTestLimiter(t)
		router := newLimitedRouter(t, rl, 5)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	})

	t.Run("nil client disables limiting", func(t *testing.T) {
		rl := NewRateLimiter(nil, zerolog.Nop())
		router := newLimitedRouter(t, rl, 1)

		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("redis failure allows the request", func(t *testing.T) {
		rl, mr := newTestLimiter(t)
		router := newLimitedRouter(t, rl, 1)
		mr.Close()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("keys are scoped per user", func(t *testing.T) {
		rl, _ := newTestLimiter(t)
		gin.SetMode(gin.TestMode)

		// Exhaust the limit as user 1, then user 2 must still pass
		asUser := func(userID int64) int {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/ping", nil)
			c.Set("userID", userID)
			rl.Limit("scoped", 1, time.Minute)(c)
			if c.IsAborted() {
				return http.StatusTooManyRequests
			}
			return http.StatusOK
		}

		require.Equal(t, http.StatusOK, asUser(1))
		assert.Equal(t, http.StatusTooManyRequests, asUser(1))
		assert.Equal(t, http.StatusOK, asUser(2))
	})
}
