package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/pagesift/pagesift"
	main "github.com/pagesift/pagesift/cmd/pagesift"
	"github.com/pagesift/pagesift/crawl"
	"github.com/pagesift/pagesift/goquery"
	"github.com/pagesift/pagesift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCrawler builds a crawler whose session serves pages from a map.
func newTestCrawler(pages map[string]string) *crawl.Crawler {
	return &crawl.Crawler{
		Sessions: &mock.SessionSource{
			NewSessionFn: func(ctx context.Context) (pagesift.Session, error) {
				return &mock.Fetcher{
					FetchFn: func(ctx context.Context, url string) (string, error) {
						html, ok := pages[url]
						if !ok {
							return "", pagesift.Errorf(pagesift.EUNAVAILABLE, "no page for %s", url)
						}
						return html, nil
					},
				}, nil
			},
		},
		Classifier: goquery.NewClassifier(),
		Tables:     goquery.NewTableExtractor(),
		Lists:      goquery.NewListExtractor(),
		Articles:   goquery.NewArticleExtractor(),
		Pagination: goquery.NewPaginator(),
		Limiter:    &mock.DomainLimiter{WaitFn: func(context.Context, string) error { return nil }},
	}
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints extracted records as JSON", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://example.com/prices": `<html><body><table>
<tr><th>Name</th><th>Price</th></tr>
<tr><td>Widget</td><td>9.99</td></tr>
<tr><td>Gadget</td><td>19.99</td></tr>
</table></body></html>`,
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Crawler: newTestCrawler(pages),
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com/prices", MaxPages: 1, Format: "json"}
		err := cmd.Run(deps)

		require.NoError(t, err)

		var result pagesift.CrawlResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
		assert.Equal(t, pagesift.StrategyTable, result.Strategy)
		require.Len(t, result.Records, 2)
		assert.Equal(t, "Widget", result.Records[0]["Name"])
		assert.Equal(t, "19.99", result.Records[1]["Price"])
	})

	t.Run("prints CSV when requested", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://example.com/prices": `<html><body><table>
<tr><th>Name</th><th>Price</th></tr>
<tr><td>Widget</td><td>9.99</td></tr>
</table></body></html>`,
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Crawler: newTestCrawler(pages),
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com/prices", MaxPages: 1, Format: "csv"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Name,Price")
		assert.Contains(t, output, "Widget,9.99")
	})

	t.Run("reports first-page fetch failure", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Crawler: newTestCrawler(map[string]string{}),
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com/missing", MaxPages: 1, Format: "json"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
