// Package slog provides logging decorators for autodocs services.
package slog

import (
	"context"
	"log/slog"
	"time"

	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// Ensure LoggingFetcher implements autodocs.Fetcher.
var _ autodocs.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   autodocs.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next autodocs.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *autodocs.FetchResult, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", url,
			"status", resultStatus(result),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Probe delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Probe(ctx context.Context, url string) (result *autodocs.FetchResult, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("probe",
			"url", url,
			"status", resultStatus(result),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Probe(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func resultStatus(result *autodocs.FetchResult) int {
	if result == nil {
		return 0
	}
	return result.Status
}
