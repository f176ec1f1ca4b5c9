package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pagesift/pagesift"
)

// Ensure Classifier implements pagesift.Classifier at compile time.
var _ pagesift.Classifier = (*Classifier)(nil)

// minTableRows is the row count a table must exceed to select the table
// strategy.
const minTableRows = 2

// Classifier decides the extraction strategy for a page from purely
// structural signals. It is deterministic and side-effect-free for a
// fixed input.
type Classifier struct {
	detector *Detector
}

// NewClassifier creates a new Classifier.
func NewClassifier() *Classifier {
	return &Classifier{detector: NewDetector()}
}

// Classify scans table elements in document order; the first one with
// more than two rows selects StrategyTable. Otherwise a qualifying
// repeating-card group selects StrategyList. Anything else falls back to
// StrategyArticle.
//
// The table used for the decision is the first qualifying one; the
// tabular extractor independently re-selects the table with the most
// rows, which need not be the same element.
func (c *Classifier) Classify(markup string) pagesift.Strategy {
	doc, err := parse(markup)
	if err != nil {
		return pagesift.StrategyArticle
	}

	table := false
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if t.Find("tr").Length() > minTableRows {
			table = true
			return false
		}
		return true
	})
	if table {
		return pagesift.StrategyTable
	}

	if c.detector.HasRepeating(markup) {
		return pagesift.StrategyList
	}

	return pagesift.StrategyArticle
}
