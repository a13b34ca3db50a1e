package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(rate int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(NewRateLimiter(rate).RateLimit())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func get(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimit_AllowsUnderLimit(t *testing.T) {
	router := newLimitedRouter(5)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, get(router, "10.0.0.1:1234").Code)
	}
}

func TestRateLimit_DeniesOverLimit(t *testing.T) {
	router := newLimitedRouter(3)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, get(router, "10.0.0.2:1234").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, get(router, "10.0.0.2:1234").Code)
}

func TestRateLimit_TracksClientsSeparately(t *testing.T) {
	router := newLimitedRouter(1)

	require.Equal(t, http.StatusOK, get(router, "10.0.0.3:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(router, "10.0.0.3:1234").Code)
	assert.Equal(t, http.StatusOK, get(router, "10.0.0.4:1234").Code)
}

func TestRequestID_GeneratedWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Len(t, w.Header().Get("X-Request-ID"), 8)
}

func TestRequestID_EchoesProvidedID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-abc-123", w.Header().Get("X-Request-ID"))
}
