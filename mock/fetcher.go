// Package mock provides function-field mock implementations of autodocs
// interfaces for use in tests.
package mock

import (
	"context"
	"sync"
	"time"

	autodocs "github.com/ziyacivan/autodocs-mcp"
)

var _ autodocs.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of autodocs.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*autodocs.FetchResult, error)
	ProbeFn func(ctx context.Context, url string) (*autodocs.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*autodocs.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Probe(ctx context.Context, url string) (*autodocs.FetchResult, error) {
	if f.ProbeFn != nil {
		return f.ProbeFn(ctx, url)
	}
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

var _ autodocs.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of autodocs.HostLimiter.
type HostLimiter struct {
	WaitFn    func(ctx context.Context, host string) error
	BackoffFn func(host string, d time.Duration)
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l.WaitFn != nil {
		return l.WaitFn(ctx, host)
	}
	return nil
}

func (l *HostLimiter) Backoff(host string, d time.Duration) {
	if l.BackoffFn != nil {
		l.BackoffFn(host, d)
	}
}

var _ autodocs.Reporter = (*Reporter)(nil)

// Reporter is a mock implementation of autodocs.Reporter that records
// every reported message.
type Reporter struct {
	mu       sync.Mutex
	messages []string
}

func (r *Reporter) Report(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Messages returns a copy of all reported messages.
func (r *Reporter) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}
