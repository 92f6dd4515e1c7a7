package scrape

import (
	"context"
	"errors"
	"fmt"
	"sync"

	autodocs "github.com/ziyacivan/autodocs-mcp"
	"golang.org/x/sync/errgroup"
)

// Crawl bounds for the generic strategy.
const (
	defaultMaxPages    = 500
	defaultMaxDepth    = 5
	defaultConcurrency = 5

	// frontierExpectedURLs sizes the Bloom filter for deduplication.
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Ensure Scraper implements autodocs.Scraper at compile time.
var _ autodocs.Scraper = (*Scraper)(nil)

// Scraper dispatches to the scraping strategy matching a detected
// format and falls back to the generic crawler when the specific
// strategy yields no pages for a reason other than rate limiting.
type Scraper struct {
	Fetcher   autodocs.Fetcher
	Extractor autodocs.Extractor
	Converter autodocs.Converter

	// Links extracts links during the generic crawl. NavLinks is used
	// for the MkDocs navigation fallback; when nil, Links serves both.
	Links    autodocs.LinkExtractor
	NavLinks autodocs.LinkExtractor

	Reporter autodocs.Reporter // optional

	// Concurrency bounds parallel page-content fetches. Dedup happens
	// at discovery, before any concurrent fetch is dispatched.
	Concurrency int
	MaxPages    int
	MaxDepth    int
}

// pageRef is a discovered page awaiting content. HTML is pre-filled by
// the generic crawl, which already fetched the page to find links.
type pageRef struct {
	URL   string
	Title string
	HTML  string
}

// Scrape runs the strategy for format against baseURL and returns the
// ordered, deduplicated outcome.
func (s *Scraper) Scrape(ctx context.Context, baseURL string, format autodocs.Format, progress autodocs.ScrapeProgressFunc) (*autodocs.ScrapeOutcome, error) {
	outcome, err := s.runStrategy(ctx, baseURL, format, progress)
	if err != nil {
		if !fallbackable(err) {
			return nil, err
		}
		s.report("%s strategy failed: %s", format, err)
	}
	if err == nil && len(outcome.Pages) > 0 {
		return outcome, nil
	}

	attempts := []autodocs.ScrapeAttempt{{Format: format, Pages: 0}}

	// Cross-strategy fallback: one generic attempt, and only when the
	// empty result did not stem from rate limiting (that case must
	// surface as "retry later", not "try another strategy").
	if format != autodocs.FormatGeneric {
		s.report("no pages found with %s strategy, retrying with generic crawler", format)

		outcome, err = s.runStrategy(ctx, baseURL, autodocs.FormatGeneric, progress)
		if err != nil && !fallbackable(err) {
			return nil, err
		}
		if err == nil && len(outcome.Pages) > 0 {
			return outcome, nil
		}
		attempts = append(attempts, autodocs.ScrapeAttempt{Format: autodocs.FormatGeneric, Pages: 0})
	}

	return nil, &autodocs.NoPagesError{
		Format:        format,
		FallbackTried: format != autodocs.FormatGeneric,
		Attempts:      attempts,
	}
}

// runStrategy discovers page URLs with the strategy for format, then
// fetches their content.
func (s *Scraper) runStrategy(ctx context.Context, baseURL string, format autodocs.Format, progress autodocs.ScrapeProgressFunc) (*autodocs.ScrapeOutcome, error) {
	var refs []pageRef
	var discoveryFailed int
	var err error

	switch format {
	case autodocs.FormatSphinx:
		refs, err = s.discoverSphinx(ctx, baseURL)
	case autodocs.FormatMkDocs:
		refs, discoveryFailed, err = s.discoverMkDocs(ctx, baseURL)
	default:
		refs, discoveryFailed, err = s.crawlGeneric(ctx, baseURL)
	}
	if err != nil {
		return nil, err
	}

	pages, failed, rateLimitErr := s.fetchPages(ctx, refs, progress)
	if len(pages) == 0 && rateLimitErr != nil {
		return nil, rateLimitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &autodocs.ScrapeOutcome{
		Format: format,
		Pages:  pages,
		Failed: failed + discoveryFailed,
	}, nil
}

// fetchPages retrieves page content concurrently. Output order is
// discovery order, not completion order; refs whose fetch terminally
// fails are counted, not silently dropped.
func (s *Scraper) fetchPages(ctx context.Context, refs []pageRef, progress autodocs.ScrapeProgressFunc) ([]*autodocs.Page, int, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	results := make([]*autodocs.Page, len(refs))
	errs := make([]error, len(refs))

	var mu sync.Mutex
	completed := 0
	total := len(refs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, ref := range refs {
		// Abortable between pages: no new fetch starts once the
		// context is done.
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			page, err := s.processRef(gctx, ref)
			if err != nil {
				errs[i] = err
			} else {
				page.Position = i
				results[i] = page
			}

			if progress != nil {
				mu.Lock()
				completed++
				progress(autodocs.ScrapeProgress{
					URL:       ref.URL,
					Completed: completed,
					Total:     total,
					Error:     err,
				})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	var pages []*autodocs.Page
	var failed int
	var rateLimitErr error
	seen := make(map[string]bool)
	for i, page := range results {
		if page == nil {
			failed++
			var rl *autodocs.RateLimitError
			if rateLimitErr == nil && errors.As(errs[i], &rl) {
				rateLimitErr = errs[i]
			}
			continue
		}
		// Distinct discovered URLs can redirect to one page; the first
		// in discovery order wins.
		if seen[page.URL] {
			continue
		}
		seen[page.URL] = true
		page.Position = len(pages)
		pages = append(pages, page)
	}

	return pages, failed, rateLimitErr
}

// processRef fetches (unless pre-fetched), extracts, and converts one
// page.
func (s *Scraper) processRef(ctx context.Context, ref pageRef) (*autodocs.Page, error) {
	html := ref.HTML
	pageURL := ref.URL
	if html == "" {
		result, err := s.Fetcher.Fetch(ctx, ref.URL)
		if err != nil {
			return nil, err
		}
		html = string(result.Body)

		// The stored URL is the one the server actually served, so a
		// redirected entry points at its target.
		if canonical := normalizeURL(result.URL); canonical != "" {
			pageURL = canonical
		}
	}

	title := ref.Title
	content := html

	if s.Extractor != nil {
		extracted, err := s.Extractor.Extract(html)
		if err != nil {
			return nil, err
		}
		content = extracted.ContentHTML
		if title == "" {
			title = extracted.Title
		}
	}
	if s.Converter != nil {
		markdown, err := s.Converter.Convert(content)
		if err != nil {
			return nil, err
		}
		content = markdown
	}

	if title == "" {
		title = titleFromURL(pageURL)
	}

	return &autodocs.Page{
		URL:     pageURL,
		Title:   title,
		Content: content,
	}, nil
}

func (s *Scraper) report(format string, args ...any) {
	if s.Reporter != nil {
		s.Reporter.Report(fmt.Sprintf(format, args...))
	}
}

func (s *Scraper) maxPages() int {
	if s.MaxPages > 0 {
		return s.MaxPages
	}
	return defaultMaxPages
}

func (s *Scraper) maxDepth() int {
	if s.MaxDepth > 0 {
		return s.MaxDepth
	}
	return defaultMaxDepth
}

// fallbackable reports whether a strategy failure may be masked by the
// generic fallback. Rate limiting and cancellation must propagate.
func fallbackable(err error) bool {
	var rateLimit *autodocs.RateLimitError
	if errors.As(err, &rateLimit) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
