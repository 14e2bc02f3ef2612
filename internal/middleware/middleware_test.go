package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedEngine(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.POST("/questions/", RateLimit(rdb, limit, time.Hour), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r, mr
}

func post(r http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/questions/", strings.NewReader(`{}`))
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_RejectsAfterLimit(t *testing.T) {
	r, _ := newLimitedEngine(t, 2)

	first := post(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := post(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := post(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
	assert.Contains(t, third.Body.String(), "too many requests")

	// 其他客户端不受影响
	assert.Equal(t, http.StatusCreated, post(r, "10.0.0.2:1234").Code)
}

func TestRateLimit_SetsWindowExpiry(t *testing.T) {
	r, mr := newLimitedEngine(t, 5)

	require.Equal(t, http.StatusCreated, post(r, "10.0.0.1:1234").Code)
	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "ratelimit:10.0.0.1:"))
	assert.Greater(t, mr.TTL(keys[0]), time.Duration(0))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r, mr := newLimitedEngine(t, 1)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, post(r, "10.0.0.1:1234").Code)
	}
}

func TestRequestLogger_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.POST("/echo", func(c *gin.Context) {
		body, _ := c.GetRawData()
		c.String(http.StatusOK, string(body))
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("payload"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "payload", w.Body.String())
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("again"))
	req.Header.Set(RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate([]byte("short")))
	long := truncate([]byte(strings.Repeat("x", maxLoggedBody+10)))
	assert.True(t, strings.HasSuffix(long, "...(truncated)"))
	assert.Len(t, long, maxLoggedBody+len("...(truncated)"))
}
