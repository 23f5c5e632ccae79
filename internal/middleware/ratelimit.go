package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/emre/alumnihub/internal/app/models/dto"
)

// LimiterStore hands out one token bucket per client IP and evicts buckets
// that have been idle for a while.
type LimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rps      rate.Limit
	burst    int
	ttl      time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiterStore creates a store allowing perMinute requests per minute
// with the given burst per client IP.
func NewLimiterStore(perMinute, burst int) *LimiterStore {
	s := &LimiterStore{
		limiters: make(map[string]*clientLimiter),
		rps:      rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		ttl:      10 * time.Minute,
	}
	go s.cleanup()
	return s
}

// Allow reports whether the client may proceed
func (s *LimiterStore) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cl, ok := s.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.limiters[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

func (s *LimiterStore) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		for key, cl := range s.limiters {
			if time.Since(cl.lastSeen) > s.ttl {
				delete(s.limiters, key)
			}
		}
		s.mu.Unlock()
	}
}

// RateLimit rejects clients that exceed their per-IP budget with 429
func RateLimit(store *LimiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.Allow(c.ClientIP()) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Too many requests").
				WithSeverity(dto.ErrorSeverityWarning)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}
