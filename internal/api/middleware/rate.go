package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osa911/folio/internal/api/dto/common"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
	// PerClient gives every client IP its own bucket
	PerClient bool
}

// clientEntry is one client's bucket and when it was last used
type clientEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// clientLimiters keeps one bucket per client IP. Entries idle for longer than
// maxAge are dropped on a later access; by then their bucket has refilled, so
// a dropped client starts over with exactly what it would have had.
type clientLimiters struct {
	mu        sync.Mutex
	entries   map[string]*clientEntry
	limit     rate.Limit
	burst     int
	maxAge    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiters(config RateLimitConfig) *clientLimiters {
	maxAge := time.Minute
	if config.RPS > 0 {
		if refill := time.Duration(float64(config.Burst) / config.RPS * float64(time.Second)); refill > maxAge {
			maxAge = refill
		}
	}
	return &clientLimiters{
		entries: make(map[string]*clientEntry),
		limit:   rate.Limit(config.RPS),
		burst:   config.Burst,
		maxAge:  maxAge,
		now:     time.Now,
	}
}

func (cl *clientLimiters) get(ip string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	if now.Sub(cl.lastSweep) > cl.maxAge {
		for key, e := range cl.entries {
			if now.Sub(e.lastAccess) > cl.maxAge {
				delete(cl.entries, key)
			}
		}
		cl.lastSweep = now
	}

	e, ok := cl.entries[ip]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(cl.limit, cl.burst)}
		cl.entries[ip] = e
	}
	e.lastAccess = now
	return e.limiter
}

func (cl *clientLimiters) len() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.entries)
}

// RateLimitMiddleware creates a new rate limiting middleware with the given configuration.
// Per-client buckets are keyed on gin's ClientIP, which honours forwarding
// headers only from the engine's trusted proxies.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	shared := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)
	clients := newClientLimiters(config)

	limiterFor := func(c *gin.Context) *rate.Limiter {
		if !config.PerClient {
			return shared
		}
		return clients.get(c.ClientIP())
	}

	return func(c *gin.Context) {
		limiter := limiterFor(c)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.NewErrorResponse(
				common.ErrCodeTooManyRequests,
				"Rate limit exceeded. Please try again later.",
				nil,
			))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		if config.RPS > 0 {
			refill := time.Duration(float64(time.Second) / config.RPS)
			c.Header("X-RateLimit-Reset", time.Now().Add(refill).Format(time.RFC1123))
		}

		c.Next()
	}
}
