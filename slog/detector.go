package slog

import (
	"context"
	"log/slog"
	"time"

	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// Ensure LoggingDetector implements autodocs.FormatDetector.
var _ autodocs.FormatDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a FormatDetector with logging.
type LoggingDetector struct {
	next   autodocs.FormatDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next autodocs.FormatDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the outcome.
func (d *LoggingDetector) Detect(ctx context.Context, baseURL string) (format autodocs.Format, err error) {
	defer func(begin time.Time) {
		d.logger.Info("format detection",
			"url", baseURL,
			"format", string(format),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Detect(ctx, baseURL)
}
