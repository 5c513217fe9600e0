package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/erp/fulfillment-router/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window in-memory limiter keyed by arbitrary strings.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type window struct {
	remaining int
	start     time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per key per window.
// A sweeper drops idle keys until Stop is called.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return newRateLimiter(limit, period, time.Now)
}

func newRateLimiter(limit int, period time.Duration, now func() time.Time) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  period,
		now:     now,
		stop:    make(chan struct{}),
	}
	go rl.sweep(period * 2)
	return rl
}

// Stop terminates the sweeper.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key, w := range rl.clients {
				if now.Sub(w.start) > rl.window*2 {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Allow consumes one request for key and reports whether it fits the window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.clients[key]
	if !ok || now.Sub(w.start) >= rl.window {
		rl.clients[key] = &window{remaining: rl.limit - 1, start: now}
		return true
	}
	if w.remaining > 0 {
		w.remaining--
		return true
	}
	return false
}

// Remaining returns the requests left for key in the current window.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.clients[key]
	if !ok || rl.now().Sub(w.start) >= rl.window {
		return rl.limit
	}
	return w.remaining
}

// RateLimitByKey limits requests by the key keyFunc derives from the request.
// Rejected requests get 429 with the body built by reject.
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string, reject func(*gin.Context) any) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		key := keyFunc(c)
		if !limiter.Allow(key) {
			c.Header("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, reject(c))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}

// ProxyRateLimit limits app proxy traffic per shop and client address. The
// rejection body keeps the proxy's {"error": ...} shape.
func ProxyRateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter,
		func(c *gin.Context) string {
			return c.Query("shop") + "|" + c.ClientIP()
		},
		func(*gin.Context) any {
			return dto.ProxyErrorBody{Error: "Too many requests"}
		},
	)
}
