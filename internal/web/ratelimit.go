package web

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/JonMunkholm/opsconsole/internal/web/middleware"
	"github.com/juju/ratelimit"
)

var errRateLimited = errors.New("rate limit exceeded")

// visitorIdle is how long an unused bucket is kept.
const visitorIdle = 10 * time.Minute

// rateLimiter keeps one token bucket per client IP. A bucket holds a
// minute's worth of requests and refills continuously.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	perMin   int
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	bucket   *ratelimit.Bucket
	lastSeen time.Time
}

func newRateLimiter(perMinute int) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		perMin:   perMinute,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// allow takes one token from ip's bucket.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{
			bucket: ratelimit.NewBucketWithRate(float64(rl.perMin)/60, int64(rl.perMin)),
		}
		rl.visitors[ip] = v
	}
	v.lastSeen = rl.now()
	rl.mu.Unlock()

	return v.bucket.TakeAvailable(1) == 1
}

// retryAfter is the number of seconds until one token refills.
func (rl *rateLimiter) retryAfter() int {
	if rl.perMin <= 0 {
		return 60
	}
	return int(math.Ceil(60 / float64(rl.perMin)))
}

// cleanup drops idle buckets every minute until stop.
func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.prune()
		}
	}
}

func (rl *rateLimiter) prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-visitorIdle)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// rateLimit returns middleware rejecting requests over rl's rate with 429.
func (s *Server) rateLimit(rl *rateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(middleware.ClientIP(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfter()))
				s.respondError(w, r, errRateLimited, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
