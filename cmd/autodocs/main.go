package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	autodocs "github.com/ziyacivan/autodocs-mcp"
	"github.com/ziyacivan/autodocs-mcp/goquery"
	"github.com/ziyacivan/autodocs-mcp/htmltomarkdown"
	adhttp "github.com/ziyacivan/autodocs-mcp/http"
	"github.com/ziyacivan/autodocs-mcp/scrape"
	adslog "github.com/ziyacivan/autodocs-mcp/slog"
	"github.com/ziyacivan/autodocs-mcp/sqlite"
	"github.com/ziyacivan/autodocs-mcp/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the page store.
	DB *sqlite.DB

	// Store for end-to-end testing.
	Store autodocs.PageStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("autodocs"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'autodocs --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set AUTODOCS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Store = sqlite.NewPageStore(m.DB)
	deps.DB = m.DB
	deps.Store = m.Store

	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	limiter := adhttp.NewHostLimiter(cli.RPS)
	reporter := adslog.NewReporter(logger)

	var fetcher autodocs.Fetcher = adhttp.NewFetcher(
		adhttp.WithHostLimiter(limiter),
		adhttp.WithReporter(reporter),
	)
	fetcher = adslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()
	deps.Fetcher = fetcher

	deps.Detector = adslog.NewLoggingDetector(&scrape.Detector{
		Fetcher:  fetcher,
		Markup:   goquery.NewDetector(),
		Reporter: reporter,
	}, logger)

	if cmd == "generate" {
		deps.Scraper = &scrape.Scraper{
			Fetcher:     fetcher,
			Extractor:   trafilatura.NewExtractor(),
			Converter:   htmltomarkdown.NewConverter(),
			Links:       goquery.NewGenericExtractor(),
			NavLinks:    goquery.NewMkDocsExtractor(),
			Reporter:    reporter,
			Concurrency: cli.Generate.Concurrency,
			MaxPages:    cli.Generate.MaxPages,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("AUTODOCS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "autodocs.db"
	}
	dir := filepath.Join(home, ".autodocs")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "autodocs.db")
}
