package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osa911/folio/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, string(body))
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func do(r http.Handler, method, path, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if remote != "" {
		req.RemoteAddr = remote + ":40000"
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitShared(t *testing.T) {
	r := newEngine(RateLimitMiddleware(RateLimitConfig{RPS: 0.001, Burst: 2}))

	assert.Equal(t, http.StatusOK, do(r, "GET", "/ping", "").Code)
	assert.Equal(t, http.StatusOK, do(r, "GET", "/ping", "").Code)

	w := do(r, "GET", "/ping", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "TOO_MANY_REQUESTS")
}

func TestRateLimitPerClient(t *testing.T) {
	r := newEngine(RateLimitMiddleware(RateLimitConfig{RPS: 0.001, Burst: 1, PerClient: true}))

	assert.Equal(t, http.StatusOK, do(r, "GET", "/ping", "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "GET", "/ping", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, do(r, "GET", "/ping", "10.0.0.2").Code)
}

func TestRateLimitPerClientIgnoresSpoofedHeaders(t *testing.T) {
	r := newEngine(RateLimitMiddleware(RateLimitConfig{RPS: 5.0 / 3600, Burst: 5, PerClient: true}))

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = "198.51.100.7:40000"
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.1.0.%d", i))
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.2.0.%d", i))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed)
}

func TestRateLimitTrustedProxyForwardsClient(t *testing.T) {
	r := newEngine(RateLimitMiddleware(RateLimitConfig{RPS: 0.001, Burst: 1, PerClient: true}))
	require.NoError(t, r.SetTrustedProxies([]string{"10.0.0.0/8"}))

	send := func(client string) int {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.RemoteAddr = "10.0.0.5:40000"
		req.Header.Set("X-Forwarded-For", client)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.1"))
	assert.Equal(t, http.StatusOK, send("203.0.113.2"))
}

func TestClientLimitersEvictIdleEntries(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cl := newClientLimiters(RateLimitConfig{RPS: 5.0 / 3600, Burst: 5, PerClient: true})
	cl.now = func() time.Time { return now }

	assert.InDelta(t, float64(time.Hour), float64(cl.maxAge), float64(time.Millisecond))

	for i := 0; i < 100; i++ {
		cl.get(fmt.Sprintf("192.0.2.%d", i))
	}
	assert.Equal(t, 100, cl.len())

	now = now.Add(30 * time.Minute)
	cl.get("198.51.100.1")
	assert.Equal(t, 101, cl.len())

	// only the client seen half an hour ago survives the sweep
	now = now.Add(31 * time.Minute)
	cl.get("198.51.100.2")
	assert.Equal(t, 2, cl.len())
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := do(r, "GET", "/ping", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "given-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "given-id", w.Header().Get("X-Request-ID"))
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery(logging.NewWriterLogger(io.Discard, logging.LevelError)))

	w := do(r, "GET", "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_SERVER_ERROR")
}

func TestSecurityHeaders(t *testing.T) {
	w := do(newEngine(SecurityHeaders()), "GET", "/ping", "")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestCORS(t *testing.T) {
	t.Run("production allow list", func(t *testing.T) {
		r := newEngine(CORS(true, []string{"https://portfolio.example"}))

		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "https://portfolio.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "https://portfolio.example", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "https://evil.example")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("development allows any origin", func(t *testing.T) {
		r := newEngine(CORS(false, nil))

		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLimitRequestBody(t *testing.T) {
	r := newEngine(LimitRequestBody(8))

	req := httptest.NewRequest("POST", "/echo", strings.NewReader("short"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "short", w.Body.String())

	req = httptest.NewRequest("POST", "/echo", strings.NewReader("much too long"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
