// Package htmltomarkdown renders extracted article content as Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/pagesift/pagesift"
)

// Ensure Converter implements pagesift.Converter at compile time.
var _ pagesift.Converter = (*Converter)(nil)

// blankRunRE matches the runs of three or more newlines that stripped
// boilerplate elements leave behind.
var blankRunRE = regexp.MustCompile(`\n{3,}`)

// Converter renders HTML as Markdown suitable for an article record's
// content field. Tables survive as pipe tables, and blank-line runs are
// collapsed so record content stays compact.
type Converter struct {
	conv *converter.Converter
	opts []converter.ConvertOptionFunc
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative links and image sources in the output
// against the given origin, e.g. "https://example.com".
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.opts = append(c.opts, converter.WithDomain(domain))
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pagesift.Errorf(pagesift.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html, c.opts...)
	if err != nil {
		return "", err
	}

	result = blankRunRE.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result), nil
}
