// Package ratelimit implements in-memory per-client token buckets.
package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter tracks a token bucket per client key.
type Limiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a limiter that admits perMinute requests per client with the
// given burst capacity.
func New(perMinute int, burst int) *Limiter {
	return &Limiter{
		limit:   rate.Limit(float64(perMinute) / time.Minute.Seconds()),
		burst:   burst,
		clients: make(map[string]*client),
	}
}

// Allow reports whether the client identified by key may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		c = &client{
			limiter:  rate.NewLimiter(l.limit, l.burst),
			lastSeen: time.Now(),
		}
		l.clients[key] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

const staleAfter = 10 * time.Minute

// evictStale drops buckets that have been idle long enough to be full again.
func (l *Limiter) evictStale(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > staleAfter {
			delete(l.clients, key)
		}
	}
}

// StartCleanup evicts stale client buckets until the done channel closes.
func (l *Limiter) StartCleanup(done <-chan struct{}, logger *slog.Logger) {
	go func() {
		ticker := time.NewTicker(staleAfter)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				l.evictStale(now)
				logger.Debug("evicted stale rate limit buckets")
			}
		}
	}()
}

// Middleware rejects requests over the limit with 429. Clients are keyed by
// remote IP.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !l.Allow(host) {
			// Seconds until the bucket refills one token.
			retryAfter := max(int(1/float64(l.limit)), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
