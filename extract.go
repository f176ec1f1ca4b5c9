package pagesift

import "context"

// Classifier decides the extraction strategy for a page.
type Classifier interface {
	// Classify inspects rendered markup and returns the strategy.
	// It is deterministic and side-effect-free for fixed input: a page
	// with a table of more than two rows is StrategyTable, a page with a
	// qualifying repeating-card group is StrategyList, anything else
	// falls back to StrategyArticle. Ambiguity is not an error.
	Classify(html string) Strategy
}

// Extractor turns one page's markup into records.
// Each strategy has its own implementation; all of them reparse the
// markup per call, so no document state is shared between pages.
type Extractor interface {
	// Extract parses the markup and returns the qualifying records in
	// document order. An empty result is not an error. The baseURL is
	// used to resolve relative links.
	Extract(html string, baseURL string) ([]Record, error)
}

// PaginationResolver finds the next-page URL on a page.
type PaginationResolver interface {
	// NextPage returns the next-page URL resolved against currentURL.
	// The bool result is false when no candidate exists or the candidate
	// resolves to currentURL itself (loop guard).
	NextPage(html string, currentURL string) (string, bool)
}

// Converter transforms HTML content into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// RecordWriter exports a crawl result to an external representation.
type RecordWriter interface {
	WriteResult(ctx context.Context, result *CrawlResult) error
}
