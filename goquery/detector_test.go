package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	autodocs "github.com/ziyacivan/autodocs-mcp"
	"github.com/ziyacivan/autodocs-mcp/goquery"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want autodocs.Format
	}{
		{
			name: "sphinx meta generator",
			html: `<html><head><meta name="generator" content="Sphinx 7.2.6"></head><body></body></html>`,
			want: autodocs.FormatSphinx,
		},
		{
			name: "mkdocs meta generator",
			html: `<html><head><meta name="generator" content="mkdocs-1.5.3, mkdocs-material-9.5.2"></head><body></body></html>`,
			want: autodocs.FormatMkDocs,
		},
		{
			name: "sphinx toctree markup",
			html: `<html><body><div class="toctree-wrapper"><ul><li>Intro</li></ul></div></body></html>`,
			want: autodocs.FormatSphinx,
		},
		{
			name: "readthedocs theme",
			html: `<html><body><nav class="wy-nav-side"><div class="wy-menu-vertical"></div></nav></body></html>`,
			want: autodocs.FormatSphinx,
		},
		{
			name: "sphinx rtd theme stylesheet",
			html: `<html><head><link rel="stylesheet" href="_static/css/sphinx_rtd_theme.css"></head><body></body></html>`,
			want: autodocs.FormatSphinx,
		},
		{
			name: "mkdocs material attributes",
			html: `<html><body data-md-color-scheme="default"><nav class="md-nav--primary"></nav></body></html>`,
			want: autodocs.FormatMkDocs,
		},
		{
			name: "meta generator wins over markup",
			html: `<html><head><meta name="generator" content="Sphinx 7.0"></head><body><nav class="md-nav--primary"></nav></body></html>`,
			want: autodocs.FormatSphinx,
		},
		{
			name: "plain html is unknown",
			html: `<html><body><h1>Docs</h1><p>Welcome</p></body></html>`,
			want: autodocs.FormatUnknown,
		},
		{
			name: "empty input is unknown",
			html: "",
			want: autodocs.FormatUnknown,
		},
	}

	detector := goquery.NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, detector.Detect(tt.html))
		})
	}
}
