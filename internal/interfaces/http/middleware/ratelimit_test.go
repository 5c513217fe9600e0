package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/erp/fulfillment-router/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter on a controllable clock.
func newTestLimiter(t *testing.T, limit int, period time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(limit, period, func() time.Time { return now })
	t.Cleanup(rl.Stop)
	return rl, &now
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 3, time.Minute)
		for i := 0; i < 3; i++ {
			assert.True(t, rl.Allow("k"), "request %d", i+1)
		}
		assert.False(t, rl.Allow("k"))
		assert.Equal(t, 0, rl.Remaining("k"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 1, time.Minute)
		assert.True(t, rl.Allow("a"))
		assert.False(t, rl.Allow("a"))
		assert.True(t, rl.Allow("b"))
	})

	t.Run("window resets", func(t *testing.T) {
		rl, now := newTestLimiter(t, 1, time.Minute)
		assert.True(t, rl.Allow("k"))
		assert.False(t, rl.Allow("k"))

		*now = now.Add(time.Minute)
		assert.Equal(t, 1, rl.Remaining("k"))
		assert.True(t, rl.Allow("k"))
	})
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl, _ := newTestLimiter(t, 50, time.Minute)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}

func TestProxyRateLimit(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, time.Minute)

	router := gin.New()
	router.Use(ProxyRateLimit(rl))
	router.POST("/proxy", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	send := func(shop string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/proxy?shop="+shop, nil))
		return w
	}

	w := send("a.myshopify.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, send("a.myshopify.com").Code)

	w = send("a.myshopify.com")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	var body dto.ProxyErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Too many requests", body.Error)

	assert.Equal(t, http.StatusOK, send("b.myshopify.com").Code)
}

func TestRateLimitByKey_NilLimiter(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(ProxyRateLimit(nil)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
