// Package scrape provides documentation format detection and the
// scraping strategies matching each format, with cross-strategy
// fallback to a generic crawler.
package scrape

import (
	"context"
	"errors"
	"fmt"

	"github.com/beevik/etree"
	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// Ensure Detector implements autodocs.FormatDetector at compile time.
var _ autodocs.FormatDetector = (*Detector)(nil)

// Detector determines which documentation generator produced a site by
// probing for format-specific files, in strict priority order:
//
//  1. <base>/objects.inv with inventory-shaped content → Sphinx
//  2. <base>/sitemap.xml parsing as a sitemap urlset/index → MkDocs
//  3. format markers in the index page HTML (optional Markup detector)
//  4. Generic
//
// A rate-limit failure during any probe propagates instead of being
// downgraded to Generic: a throttled server must surface as "retry
// later", not as a mis-detected format that later yields zero pages.
type Detector struct {
	Fetcher  autodocs.Fetcher
	Markup   autodocs.MarkupDetector // optional
	Reporter autodocs.Reporter       // optional
}

// Detect classifies the documentation format of the site at baseURL.
func (d *Detector) Detect(ctx context.Context, baseURL string) (autodocs.Format, error) {
	base := ensureTrailingSlash(baseURL)

	ok, err := d.probeInventory(ctx, base+"objects.inv")
	if err != nil {
		return autodocs.FormatUnknown, err
	}
	if ok {
		d.report("detected Sphinx documentation (objects.inv present)")
		return autodocs.FormatSphinx, nil
	}

	ok, err = d.probeSitemap(ctx, base+"sitemap.xml")
	if err != nil {
		return autodocs.FormatUnknown, err
	}
	if ok {
		d.report("detected MkDocs documentation (sitemap.xml present)")
		return autodocs.FormatMkDocs, nil
	}

	if d.Markup != nil {
		format, err := d.probeMarkup(ctx, baseURL)
		if err != nil {
			return autodocs.FormatUnknown, err
		}
		if format != autodocs.FormatUnknown {
			d.report(fmt.Sprintf("detected %s documentation (page markup)", format))
			return format, nil
		}
	}

	d.report("no format markers found, using generic crawler")
	return autodocs.FormatGeneric, nil
}

// probeInventory checks for a Sphinx object inventory using the
// fetcher's HEAD-then-GET behavior. A HEAD-only success has no body,
// so content is confirmed with a follow-up GET.
func (d *Detector) probeInventory(ctx context.Context, invURL string) (bool, error) {
	result, err := d.Fetcher.Probe(ctx, invURL)
	if err != nil {
		return false, ignoreTerminal(err)
	}

	if len(result.Body) == 0 {
		result, err = d.Fetcher.Fetch(ctx, invURL)
		if err != nil {
			return false, ignoreTerminal(err)
		}
	}

	return looksLikeInventory(result.Body), nil
}

// probeSitemap checks whether sitemap.xml exists and parses as
// well-formed XML with a sitemap root element.
func (d *Detector) probeSitemap(ctx context.Context, sitemapURL string) (bool, error) {
	result, err := d.Fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return false, ignoreTerminal(err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(result.Body); err != nil {
		return false, nil
	}
	root := doc.Root()
	if root == nil {
		return false, nil
	}
	return root.Tag == "urlset" || root.Tag == "sitemapindex", nil
}

// probeMarkup fetches the index page and looks for format markers in
// its HTML.
func (d *Detector) probeMarkup(ctx context.Context, baseURL string) (autodocs.Format, error) {
	result, err := d.Fetcher.Fetch(ctx, baseURL)
	if err != nil {
		if err := ignoreTerminal(err); err != nil {
			return autodocs.FormatUnknown, err
		}
		return autodocs.FormatUnknown, nil
	}
	return d.Markup.Detect(string(result.Body)), nil
}

func (d *Detector) report(message string) {
	if d.Reporter != nil {
		d.Reporter.Report(message)
	}
}

// ignoreTerminal swallows errors that simply mean "this probe target
// is absent" (404s, redirect loops, transport failures) and keeps the
// ones the caller must not mask. Rate-limit exhaustion propagates so
// detection fails loudly instead of silently classifying as Generic.
func ignoreTerminal(err error) error {
	var rateLimit *autodocs.RateLimitError
	if errors.As(err, &rateLimit) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
