package main

import (
	"fmt"

	autodocs "github.com/ziyacivan/autodocs-mcp"
)

// Run executes the detect command.
func (c *DetectCmd) Run(deps *Dependencies) error {
	format, err := deps.Detector.Detect(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", autodocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, format)
	return nil
}
