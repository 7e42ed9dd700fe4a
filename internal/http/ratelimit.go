package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter throttles API requests per client IP using a fixed window
// counter. Exceeding the limit yields 429 until the window rolls over.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*windowRecord
	max     int
	window  time.Duration
}

type windowRecord struct {
	count       int
	windowStart time.Time
}

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RateLimiter{
		clients: make(map[string]*windowRecord),
		max:     maxRequests,
		window:  window,
	}
}

// Handler returns the Gin middleware enforcing the limit.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Success:    false,
				StatusCode: http.StatusTooManyRequests,
				Message:    "Too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	record, exists := rl.clients[clientIP]
	if !exists || now.Sub(record.windowStart) >= rl.window {
		rl.clients[clientIP] = &windowRecord{count: 1, windowStart: now}
		// Opportunistically drop expired records so the map does not grow
		// with one entry per IP forever.
		if len(rl.clients) > 1024 {
			for ip, r := range rl.clients {
				if now.Sub(r.windowStart) >= rl.window {
					delete(rl.clients, ip)
				}
			}
		}
		return true
	}

	if record.count >= rl.max {
		return false
	}
	record.count++
	return true
}
