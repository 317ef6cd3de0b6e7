package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RateLimiter counts requests per client IP in fixed windows.
type RateLimiter struct {
	mu           sync.Mutex
	requestCount map[string]int
	limit        int
	window       time.Duration
	resetAt      time.Time
}

var now = time.Now

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requestCount: make(map[string]int),
		limit:        limit,
		window:       window,
		resetAt:      now().Add(window),
	}
}

// allow records a request from ip and reports whether it is within the limit.
func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// counts are dropped lazily once the window has passed
	if t := now(); !t.Before(rl.resetAt) {
		rl.requestCount = make(map[string]int)
		rl.resetAt = t.Add(rl.window)
	}
	rl.requestCount[ip]++
	return rl.requestCount[ip] <= rl.limit
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			ip = c.ClientIP()
		}

		if !rl.allow(ip) {
			log.Warn().Str("ip", ip).Str("path", c.FullPath()).Msg("[RateLimiter] Rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": "Rate limit exceeded. Please wait before making more requests.",
			})
			return
		}

		c.Next()
	}
}

// Shared limiters: one for all routes, a stricter one for import and extraction.
var (
	GlobalRateLimiter = NewRateLimiter(100, 1*time.Minute)
	StrictRateLimiter = NewRateLimiter(10, 1*time.Minute)
)
