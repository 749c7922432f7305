package middleware

import (
	"sync"
	"time"

	"Buddy_Community/internal/pkg"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterIdle  = 5 * time.Minute
	limiterSweep = time.Minute
)

type rateLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

// limiterSet 按 key 保存令牌桶，过期项每 limiterSweep 清理一次
type limiterSet struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	limiters  map[string]*rateLimiter
	lastSweep time.Time
}

func newLimiterSet(limit rate.Limit, burst int, now time.Time) *limiterSet {
	return &limiterSet{
		limit:     limit,
		burst:     burst,
		limiters:  map[string]*rateLimiter{},
		lastSweep: now,
	}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= limiterSweep {
		for k, l := range s.limiters {
			if now.After(l.expires) {
				delete(s.limiters, k)
			}
		}
		s.lastSweep = now
	}

	l, ok := s.limiters[key]
	if !ok {
		l = &rateLimiter{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.limiters[key] = l
	}
	l.expires = now.Add(limiterIdle)
	return l.limiter
}

func (s *limiterSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimitMiddleware 按 IP 的令牌桶，perMinute<=0 表示不限流
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	set := newLimiterSet(rate.Every(time.Minute/time.Duration(perMinute)), max(perMinute/2, 1), time.Now())

	return func(c *gin.Context) {
		if !set.get(c.ClientIP(), time.Now()).Allow() {
			pkg.Fail(c, pkg.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
