package autodocs

import (
	"errors"
	"fmt"
	"time"
)

// Application error codes.
//
// These are meant to be generic classifications that map cleanly onto
// user-facing behavior: EINVALID and ENOTFOUND produce diagnostics,
// ERATELIMIT tells the caller to retry later, EINTERNAL is a bug.
const (
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	ERATELIMIT   = "rate_limit"
	EREDIRECT    = "too_many_redirects"
	EUNAVAILABLE = "unavailable"
	EINTERNAL    = "internal"
)

// Error represents an application error with a machine-readable code
// and a human-readable message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("autodocs error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper to construct an Error with formatting.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// RateLimitError reports that a server throttled us and retries were
// exhausted. RetryAfter carries the last server-provided (or computed)
// wait so the caller can surface "retry later" rather than a generic
// failure.
type RateLimitError struct {
	URL        string
	RetryAfter time.Duration
	Attempts   int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (429) after %d attempts for %s", e.Attempts, e.URL)
}

// HTTPError reports a terminal non-2xx response.
type HTTPError struct {
	URL    string
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.Status, e.URL)
}

// RedirectError reports that a fetch exceeded the redirect hop bound.
type RedirectError struct {
	URL  string
	Hops int
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("stopped after %d redirects for %s", e.Hops, e.URL)
}

// ParseError reports malformed inventory, sitemap, or HTML content.
type ParseError struct {
	Source string // "inventory", "sitemap", "html"
	URL    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s from %s: %v", e.Source, e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NoPagesError reports that scraping produced zero pages even after the
// generic fallback. It carries per-attempt context for a user-visible
// diagnostic.
type NoPagesError struct {
	Format        Format
	FallbackTried bool
	Attempts      []ScrapeAttempt
}

// ScrapeAttempt records one strategy attempt for NoPagesError context.
type ScrapeAttempt struct {
	Format Format
	Pages  int
}

func (e *NoPagesError) Error() string {
	if e.FallbackTried {
		return fmt.Sprintf("no pages found (tried %s strategy, then generic fallback)", e.Format)
	}
	return fmt.Sprintf("no pages found (tried %s strategy)", e.Format)
}

// ErrorCode returns the code of the root error, if available.
// Returns EINTERNAL for unclassified errors, empty string for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var rateLimit *RateLimitError
	if errors.As(err, &rateLimit) {
		return ERATELIMIT
	}
	var redirect *RedirectError
	if errors.As(err, &redirect) {
		return EREDIRECT
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Status == 404 {
			return ENOTFOUND
		}
		return EUNAVAILABLE
	}
	var parse *ParseError
	if errors.As(err, &parse) {
		return EINVALID
	}
	var noPages *NoPagesError
	if errors.As(err, &noPages) {
		return ENOTFOUND
	}

	return EINTERNAL
}

// ErrorMessage returns a user-facing message for an error, with a
// suggested remedy where one exists. Internal errors are masked.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}

	var rateLimit *RateLimitError
	if errors.As(err, &rateLimit) {
		if rateLimit.RetryAfter > 0 {
			return fmt.Sprintf("the server is rate limiting requests; try again in %s", rateLimit.RetryAfter)
		}
		return "the server is rate limiting requests; try again later"
	}
	var redirect *RedirectError
	if errors.As(err, &redirect) {
		return fmt.Sprintf("%s redirects too many times; check the URL", redirect.URL)
	}
	var noPages *NoPagesError
	if errors.As(err, &noPages) {
		return "no pages found; check that the URL points at a documentation site and does not require authentication"
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("the server returned HTTP %d for %s", httpErr.Status, httpErr.URL)
	}
	var parse *ParseError
	if errors.As(err, &parse) {
		return fmt.Sprintf("could not parse the site's %s; the site may publish a malformed file", parse.Source)
	}

	return "an internal error has occurred"
}
