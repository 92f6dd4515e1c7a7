package scrape

import (
	"context"
	"net/url"

	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// discoverSphinx lists pages from the site's objects.inv inventory.
// Inventory entries reference anchors within pages, so many entries
// resolve to the same page; entries are deduplicated by resolved URL
// in inventory order.
func (s *Scraper) discoverSphinx(ctx context.Context, baseURL string) ([]pageRef, error) {
	base := ensureTrailingSlash(baseURL)
	invURL := base + "objects.inv"

	result, err := s.Fetcher.Fetch(ctx, invURL)
	if err != nil {
		return nil, err
	}

	entries, err := parseInventory(result.Body)
	if err != nil {
		return nil, &autodocs.ParseError{Source: "inventory", URL: invURL, Err: err}
	}

	parsedBase, err := url.Parse(base)
	if err != nil {
		return nil, autodocs.Errorf(autodocs.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	seen := make(map[string]bool)
	var refs []pageRef
	for _, entry := range entries {
		if entry.URI == "" {
			continue
		}

		ref, err := url.Parse(entry.URI)
		if err != nil {
			continue
		}
		resolved := normalizeURL(parsedBase.ResolveReference(ref).String())
		if resolved == "" || seen[resolved] {
			continue
		}
		seen[resolved] = true

		title := entry.DispName
		if title == "" {
			title = entry.Name
		}
		refs = append(refs, pageRef{URL: resolved, Title: title})
	}

	s.report("inventory lists %d entries across %d pages", len(entries), len(refs))
	return refs, nil
}
