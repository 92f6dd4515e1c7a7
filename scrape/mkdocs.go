package scrape

import (
	"context"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// maxSitemapDepth bounds recursion into nested sitemap indexes.
const maxSitemapDepth = 5

// discoverMkDocs lists pages from the site's sitemap.xml, recursing
// into sitemap indexes. When the sitemap yields no usable entries, it
// falls back to navigation-link discovery on the index page before
// giving up.
func (s *Scraper) discoverMkDocs(ctx context.Context, baseURL string) ([]pageRef, int, error) {
	base := ensureTrailingSlash(baseURL)

	parsedBase, err := url.Parse(base)
	if err != nil {
		return nil, 0, autodocs.Errorf(autodocs.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	seen := make(map[string]bool)
	urls, failed, err := s.sitemapURLs(ctx, base+"sitemap.xml", seen, 0)
	if err != nil {
		return nil, 0, err
	}

	dedup := make(map[string]bool)
	var refs []pageRef
	for _, u := range urls {
		normalized := normalizeURL(u)
		if normalized == "" || dedup[normalized] {
			continue
		}
		if !sameScope(parsedBase, normalized) {
			continue
		}
		dedup[normalized] = true
		refs = append(refs, pageRef{URL: normalized, Title: titleFromURL(normalized)})
	}

	if len(refs) > 0 {
		s.report("sitemap lists %d pages", len(refs))
		return refs, failed, nil
	}

	s.report("sitemap yielded no pages, scanning index page navigation")
	refs, err = s.discoverNav(ctx, baseURL, parsedBase)
	return refs, failed, err
}

// sitemapURLs fetches and parses one sitemap document, handling both
// <urlset> and recursive <sitemapindex> roots. A broken child of a
// sitemap index is skipped and counted so its siblings still
// contribute; rate limits and cancellation still propagate.
func (s *Scraper) sitemapURLs(ctx context.Context, sitemapURL string, seen map[string]bool, depth int) ([]string, int, error) {
	if depth > maxSitemapDepth || seen[sitemapURL] {
		return nil, 0, nil
	}
	seen[sitemapURL] = true

	result, err := s.Fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, 0, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(result.Body); err != nil {
		return nil, 0, &autodocs.ParseError{Source: "sitemap", URL: sitemapURL, Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, 0, nil
	}

	if root.Tag == "sitemapindex" {
		var all []string
		var failed int
		for _, sitemap := range root.SelectElements("sitemap") {
			loc := sitemap.SelectElement("loc")
			if loc == nil {
				continue
			}
			child := strings.TrimSpace(loc.Text())
			if child == "" {
				continue
			}
			urls, childFailed, err := s.sitemapURLs(ctx, child, seen, depth+1)
			if err != nil {
				if !fallbackable(err) {
					return nil, 0, err
				}
				s.report("skipping sitemap %s: %s", child, err)
				failed++
				continue
			}
			failed += childFailed
			all = append(all, urls...)
		}
		return all, failed, nil
	}

	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, 0, nil
}

// discoverNav extracts documentation links from the index page's
// navigation markup.
func (s *Scraper) discoverNav(ctx context.Context, baseURL string, parsedBase *url.URL) ([]pageRef, error) {
	extractor := s.NavLinks
	if extractor == nil {
		extractor = s.Links
	}
	if extractor == nil {
		return nil, nil
	}

	result, err := s.Fetcher.Fetch(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	links, err := extractor.ExtractLinks(string(result.Body), result.URL)
	if err != nil {
		return nil, &autodocs.ParseError{Source: "html", URL: baseURL, Err: err}
	}

	dedup := make(map[string]bool)
	var refs []pageRef
	for _, link := range links {
		normalized := normalizeURL(link.URL)
		if normalized == "" || dedup[normalized] {
			continue
		}
		if !sameScope(parsedBase, normalized) {
			continue
		}
		dedup[normalized] = true

		title := strings.TrimSpace(link.Text)
		if title == "" {
			title = titleFromURL(normalized)
		}
		refs = append(refs, pageRef{URL: normalized, Title: title})
	}
	return refs, nil
}
