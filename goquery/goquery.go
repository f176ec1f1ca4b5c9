// Package goquery implements the structural heuristics of pagesift on
// top of goquery: strategy classification, repeating-structure
// detection, tabular and list extraction, field inference, and
// pagination discovery. Every operation reparses its input markup, so
// no document state survives between pages.
package goquery

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// priceRE matches price-like text: currency symbols, common currency
// codes, or a decimal-with-two-places pattern. The decimal pattern can
// misclassify non-price numerics (version strings, measurements);
// preserved as observed.
var priceRE = regexp.MustCompile(`(?i)(KSh|[$£€]|Rs\.?|Price|[\d,]+\.\d{2})`)

// parse builds a document from markup. Errors are rare (the underlying
// tokenizer is permissive) but surface as a nil document.
func parse(markup string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(markup))
}

// textLen counts characters, not bytes, so thresholds behave the same
// for non-ASCII content.
func textLen(s string) int {
	return utf8.RuneCountInString(s)
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// attrVal returns the value of the named attribute on an element node.
func attrVal(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// primaryClass returns the first class listed in an element's class
// attribute, or the empty string.
func primaryClass(n *html.Node) string {
	for _, c := range strings.Fields(attrVal(n, "class")) {
		return c
	}
	return ""
}

// sortedClasses returns the element's class list sorted and joined with
// dots, for fallback signature grouping.
func sortedClasses(n *html.Node) string {
	fields := strings.Fields(attrVal(n, "class"))
	if len(fields) == 0 {
		return ""
	}
	slices.Sort(fields)
	return strings.Join(fields, ".")
}

// firstDescendant returns the first descendant element with the given
// tag, in document order.
func firstDescendant(n *html.Node, tag string) *html.Node {
	for d := range n.Descendants() {
		if d.Type == html.ElementNode && d.Data == tag {
			return d
		}
	}
	return nil
}

// nodeText concatenates the trimmed text segments of a subtree joined
// with sep, skipping empty segments.
func nodeText(n *html.Node, sep string) string {
	var parts []string
	for d := range n.Descendants() {
		if d.Type != html.TextNode {
			continue
		}
		if t := strings.TrimSpace(d.Data); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, sep)
}

// textDescendants counts non-empty text nodes in a subtree.
func textDescendants(n *html.Node) int {
	count := 0
	for d := range n.Descendants() {
		if d.Type == html.TextNode && strings.TrimSpace(d.Data) != "" {
			count++
		}
	}
	return count
}

// tagDiversity counts distinct descendant element tag names.
func tagDiversity(n *html.Node) int {
	seen := make(map[string]bool)
	for d := range n.Descendants() {
		if d.Type == html.ElementNode {
			seen[d.Data] = true
		}
	}
	return len(seen)
}
