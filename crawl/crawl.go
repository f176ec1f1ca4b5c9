// Package crawl provides bounded multi-page crawl orchestration. It
// composes the strategy classifier, the per-strategy extractors, and the
// pagination resolver around an externally supplied fetch session, and
// accumulates extracted records across pages into one result.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/bloom"
)

// DefaultPoliteDelay is the fixed delay applied between successive
// fetches of the same crawl.
const DefaultPoliteDelay = 2 * time.Second

// Visited-set sizing. A crawl visits at most its page budget, so the
// filter is generously oversized; the false positive rate keeps
// accidental early stops negligible.
const (
	visitedExpectedURLs      = 1024
	visitedFalsePositiveRate = 0.001
)

// Crawler orchestrates one-page-at-a-time crawls. All fields except
// Limiter and RetryDelays are required.
type Crawler struct {
	Sessions   pagesift.SessionSource
	Classifier pagesift.Classifier
	Tables     pagesift.Extractor
	Lists      pagesift.Extractor
	Articles   pagesift.Extractor
	Pagination pagesift.PaginationResolver

	// Limiter applies the politeness delay between fetches. When nil,
	// each crawl gets its own limiter at DefaultPoliteDelay.
	Limiter pagesift.DomainLimiter

	// RetryDelays enables fetch retries with the given backoff schedule.
	// The default is nil: a failed fetch terminates the crawl loop
	// without retrying.
	RetryDelays []time.Duration
}

// ProgressEvent reports crawl progress after each completed page.
type ProgressEvent struct {
	URL      string
	Page     int // 1-based index of the completed page
	Total    int // the page budget
	Percent  int // pages done as a percentage of the budget
	Strategy pagesift.Strategy
	Records  int // records accumulated so far
}

// ProgressFunc is an advisory side-channel; it is not part of the
// extraction contract. Each crawl only ever calls its own callback.
type ProgressFunc func(event ProgressEvent)

// Crawl fetches up to maxPages pages starting at startURL, classifying
// and extracting each, and following next-page links. It stops early
// when a fetch fails, when no next page is found, when the next page
// resolves to an already-visited URL, or when the budget is exhausted.
//
// The returned result carries whatever was accumulated before an early
// stop; the error is non-nil only for invalid arguments, session
// acquisition failure, or a fetch failure on the very first page. The
// result's Strategy is that of the last successfully classified page.
func (c *Crawler) Crawl(ctx context.Context, startURL string, maxPages int, progress ProgressFunc) (*pagesift.CrawlResult, error) {
	if maxPages < 1 {
		return nil, pagesift.Errorf(pagesift.EINVALID, "page budget must be at least 1, got %d", maxPages)
	}
	if _, err := url.Parse(startURL); err != nil {
		return nil, pagesift.Errorf(pagesift.EINVALID, "invalid start URL %q: %v", startURL, err)
	}

	result := &pagesift.CrawlResult{Records: []pagesift.Record{}}

	session, err := c.Sessions.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	// The session is released on every exit path. A release failure is
	// surfaced as a warning and never suppresses extracted records.
	defer func() {
		if cerr := session.Close(); cerr != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("releasing session: %v", cerr))
		}
	}()

	limiter := c.Limiter
	if limiter == nil {
		limiter = NewDomainLimiter(DefaultPoliteDelay)
	}

	visited := bloom.NewFilter(visitedExpectedURLs, visitedFalsePositiveRate)
	current := startURL

	for page := 0; page < maxPages; page++ {
		// The wait fails only on context cancellation. Record it so a
		// canceled crawl is distinguishable from exhausted pagination.
		if err := limiter.Wait(ctx, hostOf(current)); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("canceled before fetching %s: %v", current, err))
			break
		}

		visited.Add(current)

		markup, err := c.fetch(ctx, session, current)
		if err != nil {
			if page == 0 {
				return result, pagesift.Errorf(pagesift.ErrorCode(err), "fetching first page %s: %s", current, pagesift.ErrorMessage(err))
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf("fetch %s: %s", current, pagesift.ErrorMessage(err)))
			break
		}

		strategy := c.Classifier.Classify(markup)
		result.Strategy = strategy
		result.PageStrategies = append(result.PageStrategies, strategy)

		records, err := c.extractorFor(strategy).Extract(markup, current)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("extract %s: %s", current, pagesift.ErrorMessage(err)))
			break
		}
		result.Records = append(result.Records, records...)
		result.Pages++

		if progress != nil {
			progress(ProgressEvent{
				URL:      current,
				Page:     page + 1,
				Total:    maxPages,
				Percent:  (page + 1) * 100 / maxPages,
				Strategy: strategy,
				Records:  len(result.Records),
			})
		}

		if page == maxPages-1 {
			break
		}

		next, ok := c.Pagination.NextPage(markup, current)
		if !ok || visited.Test(next) {
			break
		}
		current = next
	}

	return result, nil
}

// fetch runs one fetch, with retries only when RetryDelays is set.
func (c *Crawler) fetch(ctx context.Context, session pagesift.Session, url string) (string, error) {
	if len(c.RetryDelays) == 0 {
		return session.Fetch(ctx, url)
	}
	return FetchWithRetryDelays(ctx, url, session.Fetch, nil, c.RetryDelays)
}

// extractorFor maps a strategy to its extractor.
func (c *Crawler) extractorFor(strategy pagesift.Strategy) pagesift.Extractor {
	switch strategy {
	case pagesift.StrategyTable:
		return c.Tables
	case pagesift.StrategyList:
		return c.Lists
	default:
		return c.Articles
	}
}

// hostOf extracts the host for rate limiting; malformed URLs limit under
// the empty key.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
