// Package trafilatura extracts main content from documentation pages,
// stripping navigation, sidebars, and other boilerplate.
package trafilatura

import (
	"bytes"
	"errors"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	autodocs "github.com/ziyacivan/autodocs-mcp"
	"golang.org/x/net/html"
)

// Ensure Extractor implements autodocs.Extractor at compile time.
var _ autodocs.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content with
// boilerplate removed. The title comes from page metadata.
func (e *Extractor) Extract(rawHTML string) (*autodocs.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		// Documentation pages are often link- and code-heavy, which
		// trips the main heuristics; the fallback handles them.
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &autodocs.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
