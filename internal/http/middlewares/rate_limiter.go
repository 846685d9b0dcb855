package middlewares

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/fund-router/internal/common"
	"github.com/hxuan190/fund-router/internal/http/httputil"
	"github.com/hxuan190/fund-router/internal/metrics"
)

const sweepInterval = time.Minute

type bucket struct {
	tokens   float64
	lastTime time.Time
}

// RateLimiter is a token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	rate      float64
	burst     float64
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(rate, burst int) *RateLimiter {
	return &RateLimiter{
		rate:    float64(rate),
		burst:   float64(burst),
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= sweepInterval {
		rl.sweep(now)
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.burst, lastTime: now}
		rl.buckets[key] = b
	}

	b.tokens = rl.refill(b, now)
	b.lastTime = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) refill(b *bucket, now time.Time) float64 {
	tokens := b.tokens + now.Sub(b.lastTime).Seconds()*rl.rate
	if tokens > rl.burst {
		tokens = rl.burst
	}
	return tokens
}

// sweep drops buckets back at full burst; recreating them is equivalent.
// Caller holds rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, b := range rl.buckets {
		if rl.refill(b, now) >= rl.burst {
			delete(rl.buckets, key)
		}
	}
	rl.lastSweep = now
}

// RateLimitMiddleware keys on the client IP only. The caller header is not
// validated at this point and would let a client mint fresh buckets.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			metrics.RateLimited.Inc()
			httputil.HandleError(c, common.HTTPErrorTooManyRequests("rate limit exceeded"))
			return
		}
		c.Next()
	}
}
