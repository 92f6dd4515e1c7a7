package autodocs

import (
	"context"
	"time"
)

// FetchResult is the outcome of one successful HTTP fetch.
type FetchResult struct {
	// URL is the canonical URL after redirect resolution.
	URL string

	// Status is the HTTP status code (always 2xx for a non-error result).
	Status int

	// Body is the response body. Empty for HEAD probes.
	Body []byte

	// Header maps response header names to their first value.
	Header map[string]string
}

// Fetcher retrieves documentation resources over HTTP.
//
// Implementations handle redirects, timeouts, and rate-limit
// retry/backoff. A 429 response is retried with backoff before
// surfacing as *RateLimitError; other non-2xx statuses fail
// immediately with *HTTPError.
type Fetcher interface {
	// Fetch issues a GET request and returns the response body.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Probe issues a HEAD request, falling back to a single GET when
	// the server rejects HEAD (network error, 405, or 501). The result
	// body is populated only when the GET fallback ran.
	Probe(ctx context.Context, url string) (*FetchResult, error)

	// Close releases client resources.
	Close() error
}

// HostLimiter coordinates request pacing across all fetches to a host
// within one run. A single limiter is shared so that concurrent
// fetches do not independently retry against an already-throttled
// server.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host,
	// including any host-wide pause installed by a 429 response.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error

	// Backoff installs a host-wide pause: no new request to the host
	// starts until d has elapsed.
	Backoff(host string, d time.Duration)
}

// Reporter receives progress notifications: detected format, retry
// waits, page counts. The core depends only on this narrow capability,
// not on a terminal or logging implementation.
type Reporter interface {
	Report(message string)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(message string)

// Report calls f(message).
func (f ReporterFunc) Report(message string) { f(message) }
