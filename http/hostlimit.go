package http

import (
	"context"
	"sync"
	"time"

	autodocs "github.com/ziyacivan/autodocs-mcp"
	"golang.org/x/time/rate"
)

var _ autodocs.HostLimiter = (*HostLimiter)(nil)

// HostLimiter provides per-host request pacing using token buckets,
// plus a host-wide backoff deadline installed when any request to the
// host is rate limited. Construct one per run and share it across all
// fetches so concurrent requests cannot amplify load against an
// already-throttled server.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	pauses   map[string]time.Time
	rps      float64
}

// NewHostLimiter creates a HostLimiter with the specified requests per
// second limit. Each host gets its own limiter with a burst of 1.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		pauses:   make(map[string]time.Time),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host and
// any active backoff deadline has passed. Returns an error if the
// context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[host] = limiter
	}
	pause := l.pauses[host]
	l.mu.Unlock()

	if wait := time.Until(pause); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return limiter.Wait(ctx)
}

// Backoff installs a host-wide pause: no new request to the host
// starts until d has elapsed. A later deadline never shrinks to an
// earlier one.
func (l *HostLimiter) Backoff(host string, d time.Duration) {
	deadline := time.Now().Add(d)

	l.mu.Lock()
	defer l.mu.Unlock()
	if deadline.After(l.pauses[host]) {
		l.pauses[host] = deadline
	}
}
