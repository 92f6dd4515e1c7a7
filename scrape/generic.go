package scrape

import (
	"context"
	"errors"
	"net/url"

	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// crawlGeneric performs a bounded breadth-first crawl from the index
// page, restricted to same-host links under the base URL's path
// prefix. Pages are fetched once during the crawl and their HTML kept
// on the ref, so content processing doesn't refetch. The failed count
// records discovered URLs whose fetch terminally failed.
func (s *Scraper) crawlGeneric(ctx context.Context, baseURL string) ([]pageRef, int, error) {
	parsedBase, err := url.Parse(baseURL)
	if err != nil {
		return nil, 0, autodocs.Errorf(autodocs.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	f := newFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	f.push(autodocs.DiscoveredLink{URL: baseURL, Priority: autodocs.PriorityNavigation}, 0)

	var refs []pageRef
	var failed int
	var rateLimitErr error
	crawled := make(map[string]bool)

	for len(refs) < s.maxPages() {
		link, depth, ok := f.pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		result, err := s.Fetcher.Fetch(ctx, link.URL)
		if err != nil {
			var rl *autodocs.RateLimitError
			if errors.As(err, &rl) {
				failed++
				if rateLimitErr == nil {
					rateLimitErr = err
				}
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, 0, err
			}
			failed++
			continue
		}

		// Pages are keyed by the post-redirect URL. Two discovered
		// URLs that redirect to the same page yield one ref, and the
		// canonical URL joins the frontier's seen set so a later link
		// to it directly is not fetched again.
		canonical := normalizeURL(result.URL)
		if canonical == "" {
			canonical = link.URL
		}
		if crawled[canonical] {
			continue
		}
		crawled[canonical] = true
		f.markSeen(canonical)

		html := string(result.Body)
		refs = append(refs, pageRef{URL: canonical, HTML: html})

		if depth >= s.maxDepth() || s.Links == nil {
			continue
		}

		links, err := s.Links.ExtractLinks(html, result.URL)
		if err != nil {
			// A page with unparseable markup still counts as a page;
			// it just contributes no further links.
			continue
		}
		for _, discovered := range links {
			if !sameScope(parsedBase, discovered.URL) {
				continue
			}
			f.push(discovered, depth+1)
		}
	}

	// An empty crawl caused by throttling must surface as a rate
	// limit, not as "no pages found".
	if len(refs) == 0 && rateLimitErr != nil {
		return nil, 0, rateLimitErr
	}

	s.report("generic crawl found %d pages (%d failed)", len(refs), failed)
	return refs, failed, nil
}
