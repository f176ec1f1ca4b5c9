package main

import (
	"fmt"

	"github.com/pagesift/pagesift"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := deps.Seeds.Discover(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No sitemap URLs found. Use 'pagesift scrape' to crawl a single URL.")
		return nil
	}
	if c.Limit > 0 && len(urls) > c.Limit {
		urls = urls[:c.Limit]
	}

	fmt.Fprintf(deps.Stdout, "Crawling %d URLs\n", len(urls))

	results, err := deps.Runner.Run(deps.Ctx, urls, c.MaxPages)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	var records, failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "  failed %s: %s\n", res.StartURL, pagesift.ErrorMessage(res.Err))
			continue
		}
		records += res.Result.Count()
		fmt.Fprintf(deps.Stdout, "  %s  %s  %d records\n",
			res.StartURL, res.Result.Strategy, res.Result.Count())
	}

	fmt.Fprintf(deps.Stdout, "Done: %d records from %d URLs (%d failed)\n",
		records, len(results)-failed, failed)
	return nil
}
