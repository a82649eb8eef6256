package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apierrors "github.com/feral-file/world-conquest/internal/api/shared/errors"
	"github.com/feral-file/world-conquest/internal/logger"
)

// limiterIdleTTL is how long an unused client limiter is kept
const limiterIdleTTL = 10 * time.Minute

// RateLimitConfig holds the per-client write rate limit
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type writeLimiter struct {
	config RateLimitConfig

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

func (w *writeLimiter) allow(key string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if now.Sub(w.lastSweep) > limiterIdleTTL {
		for k, cl := range w.clients {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(w.clients, k)
			}
		}
		w.lastSweep = now
	}

	cl, ok := w.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(w.config.RequestsPerSecond), w.config.Burst)}
		w.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// RateLimit throttles POST and PUT requests per client IP. Reads are never limited.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	limiter := &writeLimiter{
		config:  cfg,
		clients: make(map[string]*clientLimiter),
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}

		if !limiter.allow(c.ClientIP(), time.Now()) {
			logger.WarnCtx(c.Request.Context(), "Write rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierrors.NewRateLimitedError("Too many requests"))
			return
		}

		c.Next()
	}
}
