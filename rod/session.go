package rod

import (
	"context"
	"errors"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pagesift/pagesift"
)

// Ensure interface conformance at compile time.
var (
	_ pagesift.SessionSource = (*SessionSource)(nil)
	_ pagesift.Session       = (*Session)(nil)
)

// SessionSource launches one headless Chrome process and hands out
// isolated rendering sessions backed by incognito browser contexts.
// SessionSource is safe for concurrent use.
type SessionSource struct {
	manager *browserManager
}

// Option configures a SessionSource.
type Option func(*options)

type options struct {
	maxPages int64
}

// WithMaxPages sets the number of rendered pages before the browser
// process is recycled. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) Option {
	return func(o *options) {
		o.maxPages = n
	}
}

// NewSessionSource launches a headless browser. Close must be called
// when the source is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewSessionSource(opts ...Option) (*SessionSource, error) {
	o := &options{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(o)
	}

	manager, err := newBrowserManager(o.maxPages)
	if err != nil {
		return nil, err
	}
	return &SessionSource{manager: manager}, nil
}

// NewSession acquires a rendering session for one crawl. The session
// owns an incognito browser context released by its Close.
func (s *SessionSource) NewSession(ctx context.Context) (pagesift.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	incognito, err := s.manager.acquire().Incognito()
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EUNAVAILABLE, "creating browser context: %v", err)
	}
	return &Session{manager: s.manager, browser: incognito}, nil
}

// Close shuts down the browser process.
func (s *SessionSource) Close() error {
	return s.manager.close()
}

// Session renders pages inside one incognito browser context.
type Session struct {
	manager *browserManager
	browser *rod.Browser
}

// Fetch navigates to the URL, waits for the page to load, scrolls to
// the bottom to trigger lazy-loaded content, and returns the rendered
// HTML.
func (s *Session) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fetchError(url, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", fetchError(url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fetchError(url, err)
	}

	// Lazy-loaded images and infinite-scroll content render only once
	// scrolled into view. A failed scroll is not fatal.
	_, _ = page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)

	html, err := page.HTML()
	if err != nil {
		return "", fetchError(url, err)
	}

	s.manager.pageRendered()
	return html, nil
}

// Close releases the session's browser context.
func (s *Session) Close() error {
	return proto.TargetDisposeBrowserContext{
		BrowserContextID: s.browser.BrowserContextID,
	}.Call(s.browser)
}

// fetchError classifies a rendering failure: deadline expiry maps to
// ETIMEOUT, everything else to EUNAVAILABLE.
func fetchError(url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return pagesift.Errorf(pagesift.ETIMEOUT, "rendering %s timed out", url)
	}
	return pagesift.Errorf(pagesift.EUNAVAILABLE, "rendering %s: %v", url, err)
}
