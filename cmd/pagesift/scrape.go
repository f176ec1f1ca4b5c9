package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/crawl"
	"github.com/pagesift/pagesift/fs"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	progress := func(event crawl.ProgressEvent) {
		fmt.Fprintf(deps.Stderr, "  page %d/%d  %s  %s  %d records\n",
			event.Page, event.Total, event.Strategy, event.URL, event.Records)
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, c.URL, c.MaxPages, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", warning)
	}

	if c.Out != "" {
		var writer pagesift.RecordWriter
		switch c.Format {
		case "csv":
			writer = fs.NewCSVWriter(c.Out)
		default:
			writer = fs.NewJSONWriter(c.Out)
		}
		if err := writer.WriteResult(deps.Ctx, result); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d records from %d pages to %s\n",
			result.Count(), result.Pages, c.Out)
		return nil
	}

	if c.Format == "csv" {
		return writeCSV(deps, result)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// writeCSV prints the records as CSV to stdout.
func writeCSV(deps *Dependencies, result *pagesift.CrawlResult) error {
	names := fs.FieldNames(result.Records)
	row := make([]string, len(names))

	cw := csv.NewWriter(deps.Stdout)
	if err := cw.Write(names); err != nil {
		return err
	}
	for _, rec := range result.Records {
		for i, name := range names {
			row[i] = rec[name]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
