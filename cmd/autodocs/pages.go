package main

import (
	"fmt"

	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Store.FindRuns(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", autodocs.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs stored.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  failed=%d  %s\n",
			run.ID, run.Format, run.BaseURL, run.Failed,
			run.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	// Surface a not-found error before listing pages.
	if _, err := deps.Store.FindRunByID(deps.Ctx, c.RunID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", autodocs.ErrorMessage(err))
		return err
	}

	pages, err := deps.Store.FindPages(deps.Ctx, autodocs.PageFilter{
		RunID: &c.RunID,
		Limit: c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", autodocs.ErrorMessage(err))
		return err
	}

	for _, page := range pages {
		if c.Full {
			fmt.Fprintf(deps.Stdout, "# %s\n%s\n\n%s\n\n---\n\n", page.Title, page.URL, page.Content)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%4d  %s  %s\n", page.Position, page.Title, page.URL)
	}
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Store.DeleteRun(deps.Ctx, c.RunID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", autodocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.RunID)
	return nil
}
