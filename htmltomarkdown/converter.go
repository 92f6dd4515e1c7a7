// Package htmltomarkdown converts extracted HTML content into Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// Ensure Converter implements autodocs.Converter at compile time.
var _ autodocs.Converter = (*Converter)(nil)

// Converter converts HTML content to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a Converter with CommonMark and table support.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML into Markdown. Empty input is rejected.
func (c *Converter) Convert(htmlContent string) (string, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return "", autodocs.Errorf(autodocs.EINVALID, "empty HTML content")
	}

	md, err := c.conv.ConvertString(htmlContent)
	if err != nil {
		return "", autodocs.Errorf(autodocs.EINTERNAL, "convert html to markdown: %v", err)
	}
	return strings.TrimSpace(md), nil
}
