package pagesift

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content, or plain HTTP for static pages. The returned markup must
// represent final DOM content; the engine does not care which transport
// produced it.
type Fetcher interface {
	// Fetch navigates to the URL and returns the rendered HTML.
	// The context controls timeout and cancellation. Failures carry
	// ETIMEOUT for deadline expiry and EUNAVAILABLE for network errors
	// and non-success statuses.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Session is a per-crawl fetch scope. Each crawl acquires exactly one
// session and releases it on every exit path, including classification
// and extraction errors.
type Session interface {
	Fetcher
}

// SessionSource hands out independent fetch sessions. Browser-backed
// implementations give each session its own rendering context so that
// concurrent crawls never share page state.
type SessionSource interface {
	// NewSession acquires a session for one crawl.
	NewSession(ctx context.Context) (Session, error)

	// Close releases the underlying shared resources (e.g. the browser
	// process). Sessions must not be used after Close.
	Close() error
}

// DomainLimiter provides per-domain rate limiting. The crawl loop uses
// it to apply a politeness delay between successive fetches.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SeedSource discovers crawl start URLs from a site, typically by
// reading its sitemap. Used to feed batch crawls; a single-URL crawl
// does not need one.
type SeedSource interface {
	Discover(ctx context.Context, siteURL string) ([]string, error)
}
