package goquery

import (
	"net/url"

	"github.com/pagesift/pagesift"
)

// Ensure ListExtractor implements pagesift.Extractor at compile time.
var _ pagesift.Extractor = (*ListExtractor)(nil)

// ListExtractor extracts records from a repeating-card structure
// identified by the Detector.
type ListExtractor struct {
	detector *Detector
}

// NewListExtractor creates a new ListExtractor.
func NewListExtractor() *ListExtractor {
	return &ListExtractor{detector: NewDetector()}
}

// Extract locates the repeating containers (scored primary path, then
// signature fallback) and runs field inference on each. Records that
// have neither a title nor at least two populated fields are dropped.
func (e *ListExtractor) Extract(markup string, baseURL string) ([]pagesift.Record, error) {
	doc, err := parse(markup)
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINVALID, "parsing markup: %v", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	records := []pagesift.Record{}
	for _, container := range e.detector.containers(doc) {
		rec := inferFields(container, base)
		if rec.Usable() {
			records = append(records, rec)
		}
	}
	return records, nil
}
