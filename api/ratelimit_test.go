package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(2, time.Minute)
	require.NotNil(t, l)

	now := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))

	now = now.Add(45 * time.Second)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestIPRateLimiterSweepsIdleVisitors(t *testing.T) {
	l := NewIPRateLimiter(1, time.Minute)
	now := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	now = now.Add(2 * time.Minute)
	l.Allow("10.0.0.2")

	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "10.0.0.2")
}

func TestNewIPRateLimiterDisabled(t *testing.T) {
	assert.Nil(t, NewIPRateLimiter(0, time.Minute))
	assert.Nil(t, NewIPRateLimiter(10, 0))
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(NewIPRateLimiter(1, time.Hour)))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"error":"Too many requests from this IP, please try again later"}`, second.Body.String())
}
