package api

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the per-client limiter table. When it fills up the
// table is reset, which at worst hands every client a fresh burst.
const maxTrackedClients = 10_000

type rateLimiter interface {
	Allow(r *http.Request) bool
}

type clientLimiter struct {
	ratePerSecond rate.Limit
	burst         int

	mu      sync.Mutex
	clients map[string]*rate.Limiter
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &clientLimiter{
		ratePerSecond: rate.Limit(ratePerSecond),
		burst:         burst,
		clients:       make(map[string]*rate.Limiter),
	}
}

func (l *clientLimiter) Allow(r *http.Request) bool {
	if l == nil {
		return true
	}
	return l.limiterFor(clientKey(r)).Allow()
}

func (l *clientLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.clients[key]; ok {
		return limiter
	}
	if len(l.clients) >= maxTrackedClients {
		l.clients = make(map[string]*rate.Limiter)
	}
	limiter := rate.NewLimiter(l.ratePerSecond, l.burst)
	l.clients[key] = limiter
	return limiter
}

// clientKey prefers the first X-Forwarded-For hop and falls back to the
// remote host.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.Allow(r) {
			next.ServeHTTP(w, r)
			return
		}
		writeError(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded, please retry shortly")
	})
}
