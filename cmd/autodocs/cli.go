package main

import (
	"context"
	"io"

	autodocs "github.com/ziyacivan/autodocs-mcp"
	"github.com/ziyacivan/autodocs-mcp/scrape"
	"github.com/ziyacivan/autodocs-mcp/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Store    autodocs.PageStore
	Fetcher  autodocs.Fetcher
	Detector autodocs.FormatDetector
	Scraper  *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Generate GenerateCmd `cmd:"" help:"Detect the format of a documentation site, scrape it, and store the result"`
	Detect   DetectCmd   `cmd:"" help:"Detect the documentation format of a site without scraping"`
	Runs     RunsCmd     `cmd:"" help:"List stored scrape runs"`
	Pages    PagesCmd    `cmd:"" help:"List pages stored for a run"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a run and its pages"`

	Verbose bool    `short:"v" help:"Enable debug logging"`
	RPS     float64 `name:"rps" default:"2.0" help:"Per-host request rate limit"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	URL         string `arg:"" help:"Documentation site URL"`
	Format      string `short:"F" help:"Skip detection and force a format (sphinx, mkdocs, generic)"`
	Concurrency int    `short:"c" default:"5" help:"Concurrent fetch limit"`
	MaxPages    int    `short:"m" default:"500" help:"Maximum pages to scrape"`
}

// DetectCmd is the "detect" subcommand.
type DetectCmd struct {
	URL string `arg:"" help:"Documentation site URL"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct{}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	RunID string `arg:"" help:"Run ID"`
	Full  bool   `help:"Show full page content"`
	Limit int    `default:"0" help:"Maximum pages to show"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	RunID string `arg:"" help:"Run ID"`
}
