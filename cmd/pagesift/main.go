// Command pagesift crawls web pages and extracts structured records
// without per-site scraping code.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/crawl"
	"github.com/pagesift/pagesift/goquery"
	"github.com/pagesift/pagesift/htmltomarkdown"
	pshttp "github.com/pagesift/pagesift/http"
	"github.com/pagesift/pagesift/rod"
	pagesiftslog "github.com/pagesift/pagesift/slog"
	"github.com/pagesift/pagesift/sqlite"
	"github.com/pagesift/pagesift/trafilatura"
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

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services exposed for end-to-end testing.
	TaskService pagesift.TaskService
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
		kong.Name("pagesift"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagesift --help' to see available commands")
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

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGESIFT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.TaskService = sqlite.NewTaskService(m.DB)
	deps.DB = m.DB
	deps.Tasks = m.TaskService
	deps.Seeds = pshttp.NewSeedSource(nil)
	deps.Sites = goquery.NewSiteRegistry()

	// Crawling commands need a fetch transport and the extraction stack.
	switch cmd {
	case "scrape":
		crawler, closeSessions, err := m.buildCrawler(crawlConfig{
			static:        cli.Scrape.Static,
			delay:         time.Duration(cli.Scrape.Delay) * time.Second,
			retry:         cli.Scrape.Retry,
			verbose:       cli.Scrape.Verbose,
			siteURL:       cli.Scrape.URL,
			sites:         deps.Sites,
			articleEngine: cli.Scrape.Engine,
		}, stderr)
		if err != nil {
			return err
		}
		defer closeSessions()
		deps.Crawler = crawler

	case "batch":
		crawler, closeSessions, err := m.buildCrawler(crawlConfig{
			static:  cli.Batch.Static,
			delay:   crawl.DefaultPoliteDelay,
			verbose: cli.Batch.Verbose,
			siteURL: cli.Batch.URL,
			sites:   deps.Sites,
		}, stderr)
		if err != nil {
			return err
		}
		defer closeSessions()
		deps.Crawler = crawler
		if cli.Batch.Verbose {
			logger := slog.New(slog.NewTextHandler(stderr, nil))
			deps.Seeds = pagesiftslog.NewLoggingSeedSource(deps.Seeds, logger)
		}
		deps.Runner = &crawl.Runner{
			Crawler:     crawler,
			Tasks:       deps.Tasks,
			Concurrency: cli.Batch.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// crawlConfig carries per-command crawler settings.
type crawlConfig struct {
	static        bool
	delay         time.Duration
	retry         bool
	verbose       bool
	siteURL       string
	sites         pagesift.SiteRegistry
	articleEngine string
}

// buildCrawler wires the fetch transport and the extraction stack for
// one crawling command. The returned func releases the session source.
func (m *Main) buildCrawler(cfg crawlConfig, stderr io.Writer) (*crawl.Crawler, func(), error) {
	var sessions pagesift.SessionSource
	if cfg.static {
		sessions = pshttp.NewSessionSource()
	} else {
		src, err := rod.NewSessionSource()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		sessions = src
	}

	var classifier pagesift.Classifier = goquery.NewClassifier()
	if cfg.verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		classifier = pagesiftslog.NewLoggingClassifier(classifier, logger)
		sessions = &loggingSessions{next: sessions, logger: logger}
	}

	// Known platforms get their selector tables instead of heuristics.
	var lists pagesift.Extractor = goquery.NewListExtractor()
	if config, ok := lookupSite(cfg.sites, cfg.siteURL); ok {
		lists = goquery.NewSiteExtractor(config)
	}

	var articles pagesift.Extractor = goquery.NewArticleExtractor()
	if cfg.articleEngine == "trafilatura" {
		articles = trafilatura.NewExtractor(
			trafilatura.WithConverter(htmltomarkdown.NewConverter(converterOptions(cfg.siteURL)...)),
		)
	}

	crawler := &crawl.Crawler{
		Sessions:   sessions,
		Classifier: classifier,
		Tables:     goquery.NewTableExtractor(),
		Lists:      lists,
		Articles:   articles,
		Pagination: goquery.NewPaginator(),
		Limiter:    crawl.NewDomainLimiter(cfg.delay),
	}
	if cfg.retry {
		crawler.RetryDelays = crawl.DefaultRetryDelays()
	}

	return crawler, func() { _ = sessions.Close() }, nil
}
