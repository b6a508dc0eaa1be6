package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"userhub/backend/internal/common"
	"userhub/backend/internal/constants"
	"userhub/backend/internal/metrics"
)

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	rps     rate.Limit
	burst   int
	metrics *metrics.MetricsRegistry

	mu sync.Mutex
	// per-IP buckets, dropped after sitting idle
	limiters *cache.Cache
}

// minLimiterIdle is the shortest time a bucket is kept after its last request.
const minLimiterIdle = 10 * time.Minute

// NewRateLimiter creates a limiter. metricsReg may be nil.
func NewRateLimiter(rps float64, burst int, metricsReg *metrics.MetricsRegistry) *RateLimiter {
	idle := minLimiterIdle
	// A bucket idle long enough to refill completely is equivalent to a new one
	if rps > 0 {
		if refill := time.Duration(float64(burst) / rps * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return newRateLimiter(rps, burst, metricsReg, idle)
}

func newRateLimiter(rps float64, burst int, metricsReg *metrics.MetricsRegistry, idle time.Duration) *RateLimiter {
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		metrics:  metricsReg,
		limiters: cache.New(idle, idle/2),
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	var limiter *rate.Limiter
	if v, found := rl.limiters.Get(ip); found {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
	}
	// Re-set on every request so the idle deadline moves forward
	rl.limiters.SetDefault(ip, limiter)
	return limiter
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.getLimiter(ip).Allow() {
			if rl.metrics != nil {
				rl.metrics.RateLimitedTotal.Inc()
			}
			common.RespondError(w, nil, constants.MsgTooManyRequests, false, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
