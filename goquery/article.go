package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagesift/pagesift"
)

// Ensure ArticleExtractor implements pagesift.Extractor at compile time.
var _ pagesift.Extractor = (*ArticleExtractor)(nil)

// DefaultMaxContent caps the extracted article content length in
// characters.
const DefaultMaxContent = 5000

// ArticleExtractor is the fallback extractor for pages with no tabular
// or repeating structure. It picks the single element with the most
// text and returns it as one record.
type ArticleExtractor struct {
	maxContent int
}

// ArticleOption configures an ArticleExtractor.
type ArticleOption func(*ArticleExtractor)

// WithMaxContent sets the content length cap in characters.
// Defaults to DefaultMaxContent.
func WithMaxContent(n int) ArticleOption {
	return func(e *ArticleExtractor) {
		e.maxContent = n
	}
}

// NewArticleExtractor creates a new ArticleExtractor.
func NewArticleExtractor(opts ...ArticleOption) *ArticleExtractor {
	e := &ArticleExtractor{maxContent: DefaultMaxContent}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract finds the article, div, or main element with the most text and
// returns a single record with its newline-joined content truncated to
// the configured cap. The title comes from the page title element, or
// "No Title" when absent. Returns no records when the page has no
// text-bearing candidate at all.
func (e *ArticleExtractor) Extract(markup string, baseURL string) ([]pagesift.Record, error) {
	doc, err := parse(markup)
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINVALID, "parsing markup: %v", err)
	}

	var best *goquery.Selection
	maxText := 0
	doc.Find("article, div, main").Each(func(_ int, sel *goquery.Selection) {
		if n := textLen(nodeText(sel.Nodes[0], "")); n > maxText {
			maxText = n
			best = sel
		}
	})
	if best == nil {
		return []pagesift.Record{}, nil
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "No Title"
	}

	return []pagesift.Record{{
		"type":    "article",
		"title":   title,
		"content": truncate(nodeText(best.Nodes[0], "\n"), e.maxContent),
	}}, nil
}
