package mock

import (
	"context"

	"github.com/pagesift/pagesift"
)

var (
	_ pagesift.Classifier         = (*Classifier)(nil)
	_ pagesift.Extractor          = (*Extractor)(nil)
	_ pagesift.PaginationResolver = (*PaginationResolver)(nil)
	_ pagesift.Converter          = (*Converter)(nil)
	_ pagesift.RecordWriter       = (*RecordWriter)(nil)
)

// Classifier is a mock implementation of pagesift.Classifier.
type Classifier struct {
	ClassifyFn func(html string) pagesift.Strategy
}

func (c *Classifier) Classify(html string) pagesift.Strategy {
	return c.ClassifyFn(html)
}

// Extractor is a mock implementation of pagesift.Extractor.
type Extractor struct {
	ExtractFn func(html string, baseURL string) ([]pagesift.Record, error)
}

func (e *Extractor) Extract(html string, baseURL string) ([]pagesift.Record, error) {
	return e.ExtractFn(html, baseURL)
}

// PaginationResolver is a mock implementation of pagesift.PaginationResolver.
type PaginationResolver struct {
	NextPageFn func(html string, currentURL string) (string, bool)
}

func (p *PaginationResolver) NextPage(html string, currentURL string) (string, bool) {
	return p.NextPageFn(html, currentURL)
}

// Converter is a mock implementation of pagesift.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// RecordWriter is a mock implementation of pagesift.RecordWriter.
type RecordWriter struct {
	WriteResultFn func(ctx context.Context, result *pagesift.CrawlResult) error
}

func (w *RecordWriter) WriteResult(ctx context.Context, result *pagesift.CrawlResult) error {
	return w.WriteResultFn(ctx, result)
}
