/*
Package limiter provides per-client rate limiting for the authentication endpoints.

It keeps one token bucket (rate.Limiter) per client IP address and sweeps idle
buckets in the background until the owning context is cancelled.
*/
package limiter

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"remix/internal/pkg/errs"
	"remix/internal/pkg/logx"
	"remix/internal/pkg/resp"

	"golang.org/x/time/rate"
)

// sweepInterval is how often idle buckets are dropped.
const sweepInterval = 3 * time.Minute

// IPRateLimiter limits request frequency per client IP address.
type IPRateLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*rate.Limiter

	// limit is the sustained number of requests allowed per second.
	limit rate.Limit

	// burst is the bucket size, the number of requests allowed back to back.
	burst int
}

// NewIPRateLimiter creates a limiter allowing limit requests per second with the given burst.
// The background sweeper stops when ctx is done.
func NewIPRateLimiter(ctx context.Context, limit rate.Limit, burst int) *IPRateLimiter {
	l := &IPRateLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
		burst:   burst,
	}

	go l.sweep(ctx)

	return l
}

// bucket returns the token bucket for ip, creating it on first use.
func (l *IPRateLimiter) bucket(ip string) *rate.Limiter {
	l.mu.RLock()
	b, ok := l.buckets[ip]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok = l.buckets[ip]; !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[ip] = b
	}
	return b
}

// Allow reports whether a request from ip may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.bucket(ip).Allow()
}

// sweep drops buckets that have refilled completely, meaning the client has been idle.
func (l *IPRateLimiter) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.mu.Lock()
			removed := 0
			for ip, b := range l.buckets {
				if b.TokensAt(now) >= float64(b.Burst()) {
					delete(l.buckets, ip)
					removed++
				}
			}
			active := len(l.buckets)
			l.mu.Unlock()

			logx.Debug("Rate limiter sweep finished", "removed", removed, "active", active)
		}
	}
}

// clientIP extracts the host part of the remote address. chi's RealIP middleware
// has already replaced RemoteAddr with the forwarded address when present.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if ip == "" {
		return "unknown_ip"
	}
	return ip
}

// Middleware rejects requests over the limit with 429 Too Many Requests.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}
