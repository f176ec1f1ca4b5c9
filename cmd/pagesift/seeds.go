package main

import (
	"fmt"

	"github.com/pagesift/pagesift"
)

// Run executes the seeds command.
func (c *SeedsCmd) Run(deps *Dependencies) error {
	urls, err := deps.Seeds.Discover(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No sitemap URLs found.")
		return nil
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}

	return nil
}
