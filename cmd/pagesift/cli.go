package main

import (
	"context"
	"io"

	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/crawl"
	"github.com/pagesift/pagesift/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Tasks   pagesift.TaskService
	Seeds   pagesift.SeedSource
	Sites   pagesift.SiteRegistry
	Crawler *crawl.Crawler
	Runner  *crawl.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape ScrapeCmd `cmd:"" help:"Crawl a URL and extract structured records"`
	Batch  BatchCmd  `cmd:"" help:"Crawl a site's sitemap URLs concurrently"`
	Seeds  SeedsCmd  `cmd:"" help:"List crawlable URLs discovered from a site's sitemaps"`
	Tasks  TasksCmd  `cmd:"" help:"List crawl tasks, or show one by ID"`
	Sites  SitesCmd  `cmd:"" help:"List known platforms with built-in selectors"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL      string `arg:"" help:"Start URL"`
	MaxPages int    `short:"n" default:"1" help:"Page budget (pagination is followed up to this many pages)"`
	Static   bool   `short:"s" help:"Fetch over plain HTTP instead of a headless browser"`
	Delay    int    `default:"2" help:"Politeness delay between fetches in seconds"`
	Retry    bool   `help:"Retry failed fetches with backoff"`
	Engine   string `name:"article-engine" enum:"heuristic,trafilatura" default:"heuristic" help:"Article extraction engine; trafilatura strips boilerplate and emits Markdown content"`
	Out      string `short:"o" help:"Write the result to a file instead of stdout"`
	Format   string `enum:"json,csv" default:"json" help:"Output format"`
	Verbose  bool   `short:"v" help:"Log fetches and strategy decisions to stderr"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URL         string `arg:"" help:"Site URL whose sitemap seeds the batch"`
	MaxPages    int    `short:"n" default:"1" help:"Page budget per crawl"`
	Limit       int    `short:"l" default:"10" help:"Maximum number of seed URLs to crawl"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent crawl limit"`
	Static      bool   `short:"s" help:"Fetch over plain HTTP instead of a headless browser"`
	Verbose     bool   `short:"v" help:"Log fetches and strategy decisions to stderr"`
}

// SeedsCmd is the "seeds" subcommand.
type SeedsCmd struct {
	URL string `arg:"" help:"Site URL"`
}

// TasksCmd is the "tasks" subcommand.
type TasksCmd struct {
	ID string `arg:"" optional:"" help:"Task ID to show in detail"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}
