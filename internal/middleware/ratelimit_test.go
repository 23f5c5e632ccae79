package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestLimiterStoreAllow(t *testing.T) {
	store := NewLimiterStore(60, 2)

	if !store.Allow("1.2.3.4") {
		t.Fatal("first request should be allowed")
	}
	if !store.Allow("1.2.3.4") {
		t.Fatal("second request within burst should be allowed")
	}
	if store.Allow("1.2.3.4") {
		t.Fatal("third immediate request should exceed the burst")
	}

	// A different client has its own bucket
	if !store.Allow("5.6.7.8") {
		t.Fatal("other client should not be affected")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimit(NewLimiterStore(60, 1)))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	router.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	router.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
}
