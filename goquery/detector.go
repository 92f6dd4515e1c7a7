// Package goquery provides HTML-based format detection and link
// extraction for documentation pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// Ensure Detector implements autodocs.MarkupDetector at compile time.
var _ autodocs.MarkupDetector = (*Detector)(nil)

// Detector identifies documentation formats from HTML content. It
// checks for generator-specific meta tags, CSS classes, and structural
// markers. Used as the last detection step before a site is classified
// as generic, when neither objects.inv nor sitemap.xml matched.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified format.
// Returns FormatUnknown if the format cannot be determined.
func (d *Detector) Detect(html string) autodocs.Format {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return autodocs.FormatUnknown
	}

	// Meta generator tags are the most reliable marker when present.
	if format := d.detectFromMetaGenerator(doc); format != autodocs.FormatUnknown {
		return format
	}

	// Sphinx markers, including the ReadTheDocs theme.
	if d.hasSelector(doc, ".toctree-wrapper") ||
		d.hasSelector(doc, ".sphinxsidebar") ||
		d.hasSelector(doc, ".wy-nav-side") ||
		d.hasSelector(doc, ".wy-menu-vertical") ||
		d.hasSelector(doc, "link[href*='sphinx_rtd_theme']") {
		return autodocs.FormatSphinx
	}

	// MkDocs Material markers. data-md-* attributes are unique to it.
	if d.hasSelector(doc, "[data-md-color-scheme]") ||
		d.hasSelector(doc, "[data-md-component]") ||
		d.hasSelector(doc, ".md-nav--primary") {
		return autodocs.FormatMkDocs
	}

	return autodocs.FormatUnknown
}

// detectFromMetaGenerator checks the meta generator tag.
func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) autodocs.Format {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	switch {
	case strings.Contains(generator, "sphinx"):
		return autodocs.FormatSphinx
	case strings.Contains(generator, "mkdocs"):
		return autodocs.FormatMkDocs
	}
	return autodocs.FormatUnknown
}

// hasSelector checks if the document contains at least one element
// matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
