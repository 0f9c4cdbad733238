package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/tuanona/kasir-bot/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Per-operator rate limiter ────────────────────────────────────────────────

// window tracks request counts for one key within a fixed window.
type window struct {
	count int
	end   time.Time
	mu    sync.Mutex
}

// RateLimiter is a fixed-window limiter keyed by operator id (falling back
// to client IP before authentication).
type RateLimiter struct {
	limit  int
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		period:  period,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// Allow records one request for key and reports whether it is within limit.
// The second return value is the end of the current window.
func (rl *RateLimiter) Allow(key string) (bool, time.Time) {
	rl.mu.Lock()
	w, ok := rl.windows[key]
	if !ok {
		w = &window{}
		rl.windows[key] = w
	}
	rl.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	now := rl.now()
	if now.After(w.end) {
		w.count = 0
		w.end = now.Add(rl.period)
	}
	w.count++
	return w.count <= rl.limit, w.end
}

// Middleware must run after JWTAuth so the operator id is available.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if claims := GetClaims(c); claims != nil {
			key = strconv.FormatInt(claims.OperatorID, 10)
		}

		ok, end := rl.Allow(key)
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(end.Sub(rl.now()).Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Terlalu banyak permintaan. Coba lagi sebentar."))
			return
		}
		c.Next()
	}
}

// ── Purge ────────────────────────────────────────────────────────────────────

// Purge drops expired windows and returns how many were removed.
func (rl *RateLimiter) Purge() int {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	purged := 0
	for key, w := range rl.windows {
		w.mu.Lock()
		if now.After(w.end) {
			delete(rl.windows, key)
			purged++
		}
		w.mu.Unlock()
	}
	return purged
}

// RunPurge purges expired windows every interval until ctx is cancelled.
func (rl *RateLimiter) RunPurge(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.Purge(); n > 0 {
				log.Debug().Int("purged", n).Msg("rate limiter windows purged")
			}
		}
	}
}
