package pagesift

// Strategy identifies the extraction approach chosen for a page.
type Strategy string

// Extraction strategies, in classifier precedence order.
const (
	StrategyTable   Strategy = "table"
	StrategyList    Strategy = "list"
	StrategyArticle Strategy = "article"
)

// Record is one extracted item. The field set varies per record and per
// site; there is no fixed schema. Values are trimmed strings.
type Record map[string]string

// Usable reports whether the record carries enough content to keep.
// A record is retained only if it has a non-empty title or at least two
// populated fields.
func (r Record) Usable() bool {
	if r["title"] != "" {
		return true
	}
	return len(r) >= 2
}

// CrawlResult is the unit returned to callers at the end of a crawl.
// Records accumulate across all pages in page order.
type CrawlResult struct {
	// Strategy is the strategy of the last successfully classified page.
	// Pages within one crawl may classify differently; callers must not
	// assume the strategy is uniform. PageStrategies has the full vector.
	Strategy Strategy `json:"strategy"`

	// Records holds all extracted records in page, then document, order.
	Records []Record `json:"records"`

	// Pages is the number of pages successfully fetched and extracted.
	Pages int `json:"pages"`

	// PageStrategies records the strategy chosen for each page.
	PageStrategies []Strategy `json:"pageStrategies,omitempty"`

	// Warnings collects non-fatal problems (mid-crawl fetch failures,
	// rendering session release failures). Warnings never suppress
	// already-extracted records.
	Warnings []string `json:"warnings,omitempty"`
}

// Count returns the number of extracted records.
func (r *CrawlResult) Count() int {
	return len(r.Records)
}
