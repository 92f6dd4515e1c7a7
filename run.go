package autodocs

import (
	"context"
	"time"
)

// Run represents one completed scrape of a documentation site.
// The stored pages are the hand-off point for downstream embedding
// and indexing, which are outside this module.
type Run struct {
	ID        string    `json:"id"`
	BaseURL   string    `json:"baseUrl"`
	Format    Format    `json:"format"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.BaseURL == "" {
		return Errorf(EINVALID, "run base URL required")
	}
	if r.Format == FormatUnknown {
		return Errorf(EINVALID, "run format required")
	}
	return nil
}

// StoredPage is a persisted scraped page belonging to a run.
type StoredPage struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	RunID *string `json:"runId"`
	URL   *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageStore persists scrape outcomes. It receives the ordered,
// deduplicated page list produced by a Scraper.
type PageStore interface {
	// CreateRun records a scrape run and all of its pages.
	CreateRun(ctx context.Context, run *Run, pages []*Page) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs, most recent first.
	FindRuns(ctx context.Context) ([]*Run, error)

	// FindPages retrieves stored pages matching the filter, in
	// discovery order.
	FindPages(ctx context.Context, filter PageFilter) ([]*StoredPage, error)

	// DeleteRun permanently removes a run and its pages.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}
