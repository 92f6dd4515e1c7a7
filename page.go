package autodocs

import "context"

// Page represents one scraped documentation page.
type Page struct {
	// URL is the canonical page URL after redirect resolution,
	// with fragments stripped.
	URL string

	// Title comes from the inventory entry, the page markup, or the
	// URL path, in that order of preference.
	Title string

	// Content is the page content as Markdown.
	Content string

	// Position is the discovery order index within the scrape.
	Position int
}

// ScrapeOutcome is the ordered result of scraping one site.
//
// Page URLs are unique within an outcome, and order reflects discovery
// order regardless of fetch completion order.
type ScrapeOutcome struct {
	Format Format
	Pages  []*Page

	// Failed counts pages whose URL was discovered but whose content
	// fetch terminally failed. Those pages are omitted from Pages but
	// never silently dropped from the count.
	Failed int
}

// ScrapeProgress reports progress as pages are processed.
type ScrapeProgress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// ScrapeProgressFunc is called as pages are processed.
type ScrapeProgressFunc func(ScrapeProgress)

// FormatDetector determines which documentation generator produced a
// site. A rate-limit failure during probing propagates rather than
// being downgraded to FormatGeneric, so callers can surface the
// throttling instead of mis-detecting.
type FormatDetector interface {
	Detect(ctx context.Context, baseURL string) (Format, error)
}

// Scraper runs the scraping strategy matching a detected format and
// falls back to the generic crawler when the specific strategy yields
// no pages for a non-rate-limit reason.
type Scraper interface {
	Scrape(ctx context.Context, baseURL string, format Format, progress ScrapeProgressFunc) (*ScrapeOutcome, error)
}
