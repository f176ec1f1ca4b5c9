// Package trafilatura provides an article extractor backed by
// go-trafilatura's main-content detection.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/pagesift/pagesift"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagesift.Extractor at compile time.
var _ pagesift.Extractor = (*Extractor)(nil)

// Extractor extracts the main article of a page as a single record.
// It is an alternative to the density-heuristic article extractor for
// pages where boilerplate removal matters; when a Converter is set the
// content field is Markdown instead of plain text.
type Extractor struct {
	converter pagesift.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter sets a Converter used to render extracted content as
// Markdown. Without one, content is the extracted plain text.
func WithConverter(c pagesift.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes the markup and returns a single article record.
// Pages with no extractable main content yield an empty result.
func (e *Extractor) Extract(rawHTML string, baseURL string) ([]pagesift.Record, error) {
	if rawHTML == "" {
		return nil, pagesift.Errorf(pagesift.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	content := result.ContentText
	if e.converter != nil && result.ContentNode != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		content, err = e.converter.Convert(contentHTML)
		if err != nil {
			return nil, err
		}
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	title := strings.TrimSpace(result.Metadata.Title)
	if title == "" {
		title = "No Title"
	}

	record := pagesift.Record{
		"type":    "article",
		"title":   title,
		"content": content,
	}
	return []pagesift.Record{record}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
