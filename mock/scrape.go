package mock

import (
	"context"

	autodocs "github.com/ziyacivan/autodocs-mcp"
)

var _ autodocs.FormatDetector = (*FormatDetector)(nil)

// FormatDetector is a mock implementation of autodocs.FormatDetector.
type FormatDetector struct {
	DetectFn func(ctx context.Context, baseURL string) (autodocs.Format, error)
}

func (d *FormatDetector) Detect(ctx context.Context, baseURL string) (autodocs.Format, error) {
	return d.DetectFn(ctx, baseURL)
}

var _ autodocs.MarkupDetector = (*MarkupDetector)(nil)

// MarkupDetector is a mock implementation of autodocs.MarkupDetector.
type MarkupDetector struct {
	DetectFn func(html string) autodocs.Format
}

func (d *MarkupDetector) Detect(html string) autodocs.Format {
	return d.DetectFn(html)
}

var _ autodocs.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of autodocs.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, baseURL string, format autodocs.Format, progress autodocs.ScrapeProgressFunc) (*autodocs.ScrapeOutcome, error)
}

func (s *Scraper) Scrape(ctx context.Context, baseURL string, format autodocs.Format, progress autodocs.ScrapeProgressFunc) (*autodocs.ScrapeOutcome, error) {
	return s.ScrapeFn(ctx, baseURL, format, progress)
}

var _ autodocs.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of autodocs.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML string) (*autodocs.ExtractResult, error)
}

func (e *Extractor) Extract(rawHTML string) (*autodocs.ExtractResult, error) {
	return e.ExtractFn(rawHTML)
}

var _ autodocs.Converter = (*Converter)(nil)

// Converter is a mock implementation of autodocs.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ autodocs.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of autodocs.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]autodocs.DiscoveredLink, error)
	NameFn         func() string
}

func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]autodocs.DiscoveredLink, error) {
	return e.ExtractLinksFn(html, baseURL)
}

func (e *LinkExtractor) Name() string {
	if e.NameFn != nil {
		return e.NameFn()
	}
	return "mock"
}
