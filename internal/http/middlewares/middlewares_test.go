package middlewares

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterRefill(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(2, 2)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("a"))
	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))
	assert.True(t, rl.allow("b"), "buckets are per key")

	// Half a second at 2 req/s refills one token.
	now = now.Add(500 * time.Millisecond)
	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))

	now = now.Add(time.Hour)
	assert.True(t, rl.allow("a"))
	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"), "refill is capped at burst")
}

func TestRateLimiterSweepsIdleBuckets(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(1, 2)
	rl.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		assert.True(t, rl.allow(fmt.Sprintf("10.0.0.%d", i)))
	}
	assert.True(t, rl.allow("10.0.1.1"))
	assert.True(t, rl.allow("10.0.1.1"))
	assert.Len(t, rl.buckets, 101)

	// One second refills the single-use buckets but not the drained one.
	now = now.Add(time.Second)
	rl.lastSweep = now.Add(-sweepInterval)
	assert.True(t, rl.allow("10.0.2.1"))
	assert.Len(t, rl.buckets, 2)
	assert.Contains(t, rl.buckets, "10.0.1.1")

	// A swept bucket comes back full.
	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1, 1)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.Use(rl.RateLimitMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(remoteAddr, caller string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr
		if caller != "" {
			req.Header.Set(CallerHeader, caller)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.7:4000", "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7:4001", "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"))
	assert.Equal(t, http.StatusOK, send("203.0.113.8:4000", ""))
}

func TestRateLimitIgnoresRotatingCallerHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1, 1)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.Use(rl.RateLimitMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	allowed := 0
	for i := 0; i < 1000; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(CallerHeader, fmt.Sprintf("junk-%d", i))
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i%250))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			allowed++
		}
	}

	assert.LessOrEqual(t, allowed, 2)
	assert.Len(t, rl.buckets, 1)
}

func TestCallerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/optional", CallerMiddleware(false), func(c *gin.Context) { c.String(http.StatusOK, Caller(c)) })
	r.GET("/required", CallerMiddleware(true), func(c *gin.Context) { c.String(http.StatusOK, Caller(c)) })

	send := func(path, caller string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if caller != "" {
			req.Header.Set(CallerHeader, caller)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send("/optional", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = send("/optional", "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")
	assert.Equal(t, "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, send("/required", "").Code)
	assert.Equal(t, http.StatusBadRequest, send("/required", "not-base58!").Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assigned := w.Header().Get(RequestIDHeader)
	assert.Len(t, assigned, 36)
	assert.Equal(t, assigned, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", w.Header().Get(RequestIDHeader))
}
