package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/crawl"
	"github.com/pagesift/pagesift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageServer is a fetch session serving canned pages and counting
// fetches.
type pageServer struct {
	mu      sync.Mutex
	pages   map[string]string
	fetched []string
	closed  int

	closeErr error
}

func (s *pageServer) session() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			s.mu.Lock()
			s.fetched = append(s.fetched, url)
			s.mu.Unlock()
			html, ok := s.pages[url]
			if !ok {
				return "", pagesift.Errorf(pagesift.EUNAVAILABLE, "no page for %s", url)
			}
			return html, nil
		},
		CloseFn: func() error {
			s.mu.Lock()
			s.closed++
			s.mu.Unlock()
			return s.closeErr
		},
	}
}

func (s *pageServer) sessions() *mock.SessionSource {
	return &mock.SessionSource{
		NewSessionFn: func(ctx context.Context) (pagesift.Session, error) {
			return s.session(), nil
		},
	}
}

// newCrawler wires a Crawler around the server with pass-through
// classification and extraction: every page is a list of one record
// carrying its URL, and pagination follows a "pages" map.
func newCrawler(s *pageServer, next map[string]string) *crawl.Crawler {
	return &crawl.Crawler{
		Sessions: s.sessions(),
		Classifier: &mock.Classifier{ClassifyFn: func(string) pagesift.Strategy {
			return pagesift.StrategyList
		}},
		Tables: failingExtractor("tables"),
		Lists: &mock.Extractor{ExtractFn: func(html, baseURL string) ([]pagesift.Record, error) {
			return []pagesift.Record{{"title": "from " + baseURL}}, nil
		}},
		Articles: failingExtractor("articles"),
		Pagination: &mock.PaginationResolver{NextPageFn: func(html, currentURL string) (string, bool) {
			n, ok := next[currentURL]
			return n, ok
		}},
		Limiter: noWait(),
	}
}

func noWait() *mock.DomainLimiter {
	return &mock.DomainLimiter{WaitFn: func(context.Context, string) error { return nil }}
}

func failingExtractor(name string) *mock.Extractor {
	return &mock.Extractor{ExtractFn: func(string, string) ([]pagesift.Record, error) {
		return nil, fmt.Errorf("%s extractor should not run", name)
	}}
}

func TestCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("budget of one fetches exactly one page", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{
			"https://example.com/p1": "<html>one</html>",
		}}
		c := newCrawler(s, map[string]string{
			"https://example.com/p1": "https://example.com/p2",
		})

		result, err := c.Crawl(context.Background(), "https://example.com/p1", 1, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/p1"}, s.fetched)
		assert.Equal(t, 1, result.Pages)
		assert.Equal(t, 1, result.Count())
	})

	t.Run("follows pagination up to the budget", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{
			"https://example.com/p1": "<html>one</html>",
			"https://example.com/p2": "<html>two</html>",
			"https://example.com/p3": "<html>three</html>",
		}}
		c := newCrawler(s, map[string]string{
			"https://example.com/p1": "https://example.com/p2",
			"https://example.com/p2": "https://example.com/p3",
			"https://example.com/p3": "https://example.com/p1",
		})

		result, err := c.Crawl(context.Background(), "https://example.com/p1", 2, nil)

		require.NoError(t, err)
		assert.Len(t, s.fetched, 2)
		assert.Equal(t, 2, result.Pages)
		assert.Equal(t, []pagesift.Record{
			{"title": "from https://example.com/p1"},
			{"title": "from https://example.com/p2"},
		}, result.Records)
	})

	t.Run("stops when the next page was already visited", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{
			"https://example.com/p1": "<html>one</html>",
			"https://example.com/p2": "<html>two</html>",
		}}
		// p2 points back to p1.
		c := newCrawler(s, map[string]string{
			"https://example.com/p1": "https://example.com/p2",
			"https://example.com/p2": "https://example.com/p1",
		})

		result, err := c.Crawl(context.Background(), "https://example.com/p1", 10, nil)

		require.NoError(t, err)
		assert.Len(t, s.fetched, 2)
		assert.Equal(t, 2, result.Pages)
	})

	t.Run("stops when no next page exists", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{
			"https://example.com/only": "<html>single</html>",
		}}
		c := newCrawler(s, map[string]string{})

		result, err := c.Crawl(context.Background(), "https://example.com/only", 5, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Pages)
	})

	t.Run("first-page fetch failure returns the error", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{}}
		c := newCrawler(s, map[string]string{})

		result, err := c.Crawl(context.Background(), "https://example.com/gone", 3, nil)

		require.Error(t, err)
		assert.Equal(t, pagesift.EUNAVAILABLE, pagesift.ErrorCode(err))
		require.NotNil(t, result)
		assert.Equal(t, 0, result.Pages)
		assert.Equal(t, 1, s.closed, "session must be released on the error path")
	})

	t.Run("mid-crawl fetch failure keeps earlier records", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{
			"https://example.com/p1": "<html>one</html>",
		}}
		c := newCrawler(s, map[string]string{
			"https://example.com/p1": "https://example.com/p2",
		})

		result, err := c.Crawl(context.Background(), "https://example.com/p1", 5, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Pages)
		assert.Equal(t, 1, result.Count())
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "https://example.com/p2")
	})

	t.Run("extraction failure keeps earlier records", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{
			"https://example.com/p1": "<html>one</html>",
			"https://example.com/p2": "<html>two</html>",
		}}
		c := newCrawler(s, map[string]string{
			"https://example.com/p1": "https://example.com/p2",
		})
		calls := 0
		c.Lists = &mock.Extractor{ExtractFn: func(html, baseURL string) ([]pagesift.Record, error) {
			calls++
			if calls > 1 {
				return nil, errors.New("broken markup")
			}
			return []pagesift.Record{{"title": "first"}}, nil
		}}

		result, err := c.Crawl(context.Background(), "https://example.com/p1", 5, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Pages)
		assert.Equal(t, 1, result.Count())
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, 1, s.closed)
	})

	t.Run("canceled politeness wait leaves a warning", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{
			"https://example.com/p1": "<html>one</html>",
		}}
		c := newCrawler(s, map[string]string{
			"https://example.com/p1": "https://example.com/p2",
		})
		waits := 0
		c.Limiter = &mock.DomainLimiter{WaitFn: func(ctx context.Context, domain string) error {
			waits++
			if waits > 1 {
				return context.Canceled
			}
			return nil
		}}

		result, err := c.Crawl(context.Background(), "https://example.com/p1", 5, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Pages)
		assert.Equal(t, 1, result.Count(), "records before the cancellation survive")
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "canceled before fetching https://example.com/p2")
	})

	t.Run("session release failure becomes a warning", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{
			pages:    map[string]string{"https://example.com/p1": "<html>one</html>"},
			closeErr: errors.New("browser context already gone"),
		}
		c := newCrawler(s, map[string]string{})

		result, err := c.Crawl(context.Background(), "https://example.com/p1", 1, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Count(), "records survive a release failure")
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "releasing session")
	})

	t.Run("strategy is recorded per page", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{
			"https://example.com/p1": "<html>table page</html>",
			"https://example.com/p2": "<html>list page</html>",
		}}
		c := newCrawler(s, map[string]string{
			"https://example.com/p1": "https://example.com/p2",
		})
		c.Classifier = &mock.Classifier{ClassifyFn: func(html string) pagesift.Strategy {
			if html == "<html>table page</html>" {
				return pagesift.StrategyTable
			}
			return pagesift.StrategyList
		}}
		c.Tables = &mock.Extractor{ExtractFn: func(string, string) ([]pagesift.Record, error) {
			return []pagesift.Record{{"Name": "row"}}, nil
		}}

		result, err := c.Crawl(context.Background(), "https://example.com/p1", 2, nil)

		require.NoError(t, err)
		assert.Equal(t, []pagesift.Strategy{pagesift.StrategyTable, pagesift.StrategyList}, result.PageStrategies)
		assert.Equal(t, pagesift.StrategyList, result.Strategy, "result strategy is the last page's")
	})

	t.Run("progress fires after each page", func(t *testing.T) {
		t.Parallel()

		s := &pageServer{pages: map[string]string{
			"https://example.com/p1": "<html>one</html>",
			"https://example.com/p2": "<html>two</html>",
		}}
		c := newCrawler(s, map[string]string{
			"https://example.com/p1": "https://example.com/p2",
		})

		var events []crawl.ProgressEvent
		_, err := c.Crawl(context.Background(), "https://example.com/p1", 2, func(e crawl.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, 50, events[0].Percent)
		assert.Equal(t, 100, events[1].Percent)
		assert.Equal(t, 1, events[0].Records)
		assert.Equal(t, 2, events[1].Records)
	})

	t.Run("rejects a non-positive budget", func(t *testing.T) {
		t.Parallel()

		c := newCrawler(&pageServer{}, nil)
		_, err := c.Crawl(context.Background(), "https://example.com", 0, nil)

		require.Error(t, err)
		assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
	})

	t.Run("session acquisition failure aborts the crawl", func(t *testing.T) {
		t.Parallel()

		c := newCrawler(&pageServer{}, nil)
		c.Sessions = &mock.SessionSource{
			NewSessionFn: func(ctx context.Context) (pagesift.Session, error) {
				return nil, pagesift.Errorf(pagesift.EUNAVAILABLE, "browser not running")
			},
		}

		_, err := c.Crawl(context.Background(), "https://example.com", 1, nil)
		require.Error(t, err)
		assert.Equal(t, pagesift.EUNAVAILABLE, pagesift.ErrorCode(err))
	})
}
