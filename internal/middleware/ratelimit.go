// internal/middleware/ratelimit.go
package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	rps   float64
	burst int

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		rps:     rps,
		burst:   burst,
		clients: make(map[string]*clientLimiter),
	}
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	c, found := l.clients[ip]
	if !found {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.clients[ip] = c
		slog.Debug("New rate limiter", "ip", ip, "rps", l.rps, "burst", l.burst)
	}
	c.lastSeen = time.Now()
	lim := c.limiter
	l.mu.Unlock()
	return lim.Allow()
}

// Cleanup drops limiters of clients not seen for idle and returns how many went.
func (l *IPRateLimiter) Cleanup(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for ip, c := range l.clients {
		if time.Since(c.lastSeen) > idle {
			delete(l.clients, ip)
			removed++
		}
	}
	return removed
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (l *IPRateLimiter) StartCleanup(ctx context.Context, every, idle time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := l.Cleanup(idle); n > 0 {
					slog.Debug("Removed idle rate limiters", "count", n)
				}
			}
		}
	}()
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := ClientIP(r)
		if !l.allow(clientIP) {
			slog.Warn("Rate limit exceeded", "ip", clientIP, "path", r.URL.Path)
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP prefers proxy headers over RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
