package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// Compile-time interface verification.
var (
	_ autodocs.LinkExtractor = (*GenericExtractor)(nil)
	_ autodocs.LinkExtractor = (*MkDocsExtractor)(nil)
)

// GenericExtractor extracts links using universal CSS selectors that
// work across documentation frameworks: common navigation, TOC,
// content, and footer containers.
type GenericExtractor struct{}

// NewGenericExtractor creates a new GenericExtractor.
func NewGenericExtractor() *GenericExtractor {
	return &GenericExtractor{}
}

// Name returns the extractor's identifier.
func (e *GenericExtractor) Name() string {
	return "generic"
}

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest priority version.
// Links to other hosts are dropped.
func (e *GenericExtractor) ExtractLinks(html string, baseURL string) ([]autodocs.DiscoveredLink, error) {
	return extract(html, baseURL, []selectorGroup{
		{".toc a[href], .table-of-contents a[href], .sidebar a[href], aside a[href]", autodocs.PriorityTOC, "toc"},
		{"nav a[href], [role=\"navigation\"] a[href], .nav a[href], .menu a[href], .navbar a[href]", autodocs.PriorityNavigation, "nav"},
		{"main a[href], article a[href], .content a[href], .doc-content a[href]", autodocs.PriorityContent, "content"},
		{"footer a[href], .footer a[href]", autodocs.PriorityFooter, "footer"},
	})
}

// MkDocsExtractor extracts links from MkDocs navigation markup. It
// targets Material theme elements (.md-nav, data-md-component) with a
// plain-nav fallback for the default theme.
type MkDocsExtractor struct{}

// NewMkDocsExtractor creates a new MkDocsExtractor.
func NewMkDocsExtractor() *MkDocsExtractor {
	return &MkDocsExtractor{}
}

// Name returns the extractor's identifier.
func (e *MkDocsExtractor) Name() string {
	return "mkdocs"
}

// ExtractLinks parses HTML and returns discovered links with priority.
func (e *MkDocsExtractor) ExtractLinks(html string, baseURL string) ([]autodocs.DiscoveredLink, error) {
	return extract(html, baseURL, []selectorGroup{
		{".md-sidebar--secondary a[href], [data-md-component='toc'] a[href]", autodocs.PriorityTOC, "toc"},
		{".md-nav--primary a[href], [data-md-component='navigation'] a[href], nav a[href]", autodocs.PriorityNavigation, "nav"},
		{".md-content a[href], article a[href]", autodocs.PriorityContent, "content"},
		{"footer a[href]", autodocs.PriorityFooter, "footer"},
	})
}

// selectorGroup pairs a CSS selector with the priority assigned to
// links it matches.
type selectorGroup struct {
	selector string
	priority autodocs.LinkPriority
	source   string
}

// extract runs the selector groups in priority order, deduplicating by
// resolved URL and keeping the highest-priority occurrence.
func extract(html string, baseURL string, groups []selectorGroup) ([]autodocs.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, autodocs.Errorf(autodocs.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, autodocs.Errorf(autodocs.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1)
	// priority upgrades.
	seen := make(map[string]int)
	var links []autodocs.DiscoveredLink

	for _, group := range groups {
		doc.Find(group.selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" || isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" || !isSameHost(base, resolved) {
				return
			}

			link := autodocs.DiscoveredLink{
				URL:      resolved,
				Priority: group.priority,
				Text:     strings.TrimSpace(sel.Text()),
				Source:   group.source,
			}

			if idx, ok := seen[resolved]; ok {
				if group.priority > links[idx].Priority {
					links[idx] = link
				}
				return
			}
			seen[resolved] = len(links)
			links = append(links, link)
		})
	}

	return links, nil
}

// isNonHTTPLink checks for hrefs that cannot resolve to a page
// (javascript:, mailto:, tel:, bare fragments).
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(href, "#")
}

// resolveURL resolves a relative URL against a base URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isSameHost checks if the resolved URL has the same host as the base.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}
