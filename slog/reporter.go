package slog

import (
	"log/slog"

	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// Ensure Reporter implements autodocs.Reporter.
var _ autodocs.Reporter = (*Reporter)(nil)

// Reporter emits progress messages through a structured logger.
type Reporter struct {
	logger *slog.Logger
}

// NewReporter creates a new Reporter.
func NewReporter(logger *slog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report logs the progress message at info level.
func (r *Reporter) Report(message string) {
	r.logger.Info(message)
}
