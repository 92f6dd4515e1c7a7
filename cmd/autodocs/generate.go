package main

import (
	"fmt"

	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	format, err := c.resolveFormat(deps)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Detected format: %s\n", format)

	progress := func(p autodocs.ScrapeProgress) {
		if p.Error != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", p.URL, autodocs.ErrorMessage(p.Error))
			return
		}
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", p.Completed, p.Total, p.URL)
	}

	outcome, err := deps.Scraper.Scrape(deps.Ctx, c.URL, format, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", autodocs.ErrorMessage(err))
		return err
	}

	run := &autodocs.Run{
		BaseURL: c.URL,
		Format:  outcome.Format,
		Failed:  outcome.Failed,
	}
	if err := deps.Store.CreateRun(deps.Ctx, run, outcome.Pages); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", autodocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%d failed) as run %s\n",
		len(outcome.Pages), outcome.Failed, run.ID)
	return nil
}

// resolveFormat honors an explicit --format flag, falling back to
// detection against the live site.
func (c *GenerateCmd) resolveFormat(deps *Dependencies) (autodocs.Format, error) {
	switch c.Format {
	case "":
		return deps.Detector.Detect(deps.Ctx, c.URL)
	case "sphinx":
		return autodocs.FormatSphinx, nil
	case "mkdocs":
		return autodocs.FormatMkDocs, nil
	case "generic":
		return autodocs.FormatGeneric, nil
	default:
		return autodocs.FormatUnknown, autodocs.Errorf(autodocs.EINVALID,
			"unknown format %q: expected sphinx, mkdocs, or generic", c.Format)
	}
}
