// Package http provides the HTTP-based implementation of
// autodocs.Fetcher used for probing and scraping documentation sites.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Documentation sites (ReadTheDocs in particular) can be slow, so this
// is deliberately longer than the net/http default of no timeout would
// suggest for an interactive tool.
const DefaultFetchTimeout = 45 * time.Second

// maxRedirects bounds redirect following per request.
const maxRedirects = 10

// Rate-limit retry parameters. Backoff doubles per attempt from the
// base and is capped; a server-provided Retry-After wins over the
// computed delay.
const (
	defaultMaxAttempts = 3
	defaultBackoffBase = 1 * time.Second
	maxBackoffDelay    = 60 * time.Second
)

// Ensure Fetcher implements autodocs.Fetcher at compile time.
var _ autodocs.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves documentation resources using net/http. It follows
// redirects up to a bound, retries 429 responses with backoff, and
// coordinates pacing through an optional shared HostLimiter.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	limiter     autodocs.HostLimiter
	reporter    autodocs.Reporter
	maxAttempts int
	backoffBase time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (45s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHostLimiter sets the shared per-host limiter consulted before
// every request. All fetchers in one run should share the same limiter
// so a 429 on any request pauses the whole run for that host.
func WithHostLimiter(l autodocs.HostLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithReporter sets the progress sink used to announce retry waits.
func WithReporter(r autodocs.Reporter) Option {
	return func(f *Fetcher) {
		f.reporter = r
	}
}

// WithBackoffBase sets the initial rate-limit retry delay.
// Exposed for tests to avoid real waits.
func WithBackoffBase(d time.Duration) Option {
	return func(f *Fetcher) {
		f.backoffBase = d
	}
}

// WithMaxAttempts sets the attempt bound for rate-limited requests.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) {
		f.maxAttempts = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		maxAttempts: defaultMaxAttempts,
		backoffBase: defaultBackoffBase,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return &autodocs.RedirectError{URL: via[0].URL.String(), Hops: len(via)}
			}
			return nil
		},
	}

	return f
}

// Fetch issues a GET request and returns the response body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*autodocs.FetchResult, error) {
	return f.do(ctx, http.MethodGet, rawURL)
}

// Probe issues a HEAD request, falling back to a single GET when the
// server rejects HEAD with a network error, 405, or 501. Some servers
// reject HEAD outright, so the fallback is part of the contract, not
// an optimization.
func (f *Fetcher) Probe(ctx context.Context, rawURL string) (*autodocs.FetchResult, error) {
	result, err := f.do(ctx, http.MethodHead, rawURL)
	if err == nil {
		return result, nil
	}

	// Cancellation, bad URLs, rate-limit exhaustion, and redirect
	// loops are terminal; a GET would hit the same condition.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if autodocs.ErrorCode(err) == autodocs.EINVALID {
		return nil, err
	}
	var rateLimit *autodocs.RateLimitError
	if errors.As(err, &rateLimit) {
		return nil, err
	}
	var redirect *autodocs.RedirectError
	if errors.As(err, &redirect) {
		return nil, err
	}

	var httpErr *autodocs.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Status {
		case http.StatusMethodNotAllowed, http.StatusNotImplemented:
			return f.do(ctx, http.MethodGet, rawURL)
		default:
			return nil, err
		}
	}

	// Network error: retry once with GET.
	return f.do(ctx, http.MethodGet, rawURL)
}

// Close releases resources. A no-op for net/http clients.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// do runs one logical fetch: request, redirect following via the
// client, and the 429 retry loop.
func (f *Fetcher) do(ctx context.Context, method, rawURL string) (*autodocs.FetchResult, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, autodocs.Errorf(autodocs.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	host := parsed.Host

	delay := f.backoffBase
	var lastWait time.Duration

	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx, host); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			var redirect *autodocs.RedirectError
			if errors.As(err, &redirect) {
				return nil, redirect
			}
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait, fromHeader := retryAfter(resp.Header)
			if !fromHeader {
				wait = delay
			}
			if wait > maxBackoffDelay {
				wait = maxBackoffDelay
			}
			drain(resp)
			delay *= 2
			lastWait = wait

			if f.limiter != nil {
				f.limiter.Backoff(host, wait)
			}

			if attempt >= f.maxAttempts-1 {
				break
			}

			f.report("rate limit hit (429) for %s: waiting %s before retry %d/%d",
				rawURL, wait, attempt+2, f.maxAttempts)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			drain(resp)
			return nil, &autodocs.HTTPError{URL: rawURL, Status: resp.StatusCode}
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading body of %s: %w", rawURL, err)
		}

		return &autodocs.FetchResult{
			URL:    resp.Request.URL.String(),
			Status: resp.StatusCode,
			Body:   body,
			Header: flattenHeader(resp.Header),
		}, nil
	}

	f.report("rate limit (429) exceeded after %d attempts for %s", f.maxAttempts, rawURL)
	return nil, &autodocs.RateLimitError{
		URL:        rawURL,
		RetryAfter: lastWait,
		Attempts:   f.maxAttempts,
	}
}

func (f *Fetcher) report(format string, args ...any) {
	if f.reporter != nil {
		f.reporter.Report(fmt.Sprintf(format, args...))
	}
}

const userAgent = "autodocs-mcp/1.0"

// retryAfter parses an integer-seconds Retry-After header.
// The bool result is false when the header is absent or malformed.
func retryAfter(h http.Header) (time.Duration, bool) {
	v := h.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// drain discards and closes a response body so the connection can be
// reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// flattenHeader maps header names to their first value.
func flattenHeader(h http.Header) map[string]string {
	m := make(map[string]string, len(h))
	for name := range h {
		m[name] = h.Get(name)
	}
	return m
}
