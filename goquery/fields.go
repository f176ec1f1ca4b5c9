package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pagesift/pagesift"
	"golang.org/x/net/html"
)

// imageSourceAttrs is the ordered attribute fallback for image sources,
// covering common lazy-load schemes.
var imageSourceAttrs = []string{"src", "data-src", "data-lazy-src"}

// textCandidateTags are the leaf text-bearing tags considered during
// field inference.
var textCandidateTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "span": true, "div": true, "b": true, "strong": true,
}

// reservedClasses are class names too generic to serve as field keys.
var reservedClasses = map[string]bool{
	"text": true, "content": true, "inner": true, "name": true, "price": true,
}

// Field inference thresholds.
const (
	maxCandidateText = 300 // text candidates longer than this are skipped
	maxPriceText     = 30  // price-like text at or above this is not a price
	minTitleText     = 30  // non-heading text longer than this can be a title
)

// inferFields extracts semantic fields from one candidate container.
// Precedence: first descendant image, first descendant hyperlink
// (resolved against base), then classified leaf text candidates. Price
// keys never overwrite on collision; title always holds the longest
// heading or long-text candidate seen in the container. Fields whose
// final trimmed value has length <= 1 are dropped.
func inferFields(container *html.Node, base *url.URL) pagesift.Record {
	rec := pagesift.Record{}

	if img := firstDescendant(container, "img"); img != nil {
		for _, attr := range imageSourceAttrs {
			if v := attrVal(img, attr); v != "" {
				rec["image"] = v
				break
			}
		}
	}

	if a := firstDescendant(container, "a"); a != nil {
		if href := attrVal(a, "href"); href != "" {
			rec["link"] = resolveHref(base, href)
		}
	}

	for _, cand := range textCandidates(container) {
		text := cand.text

		if priceRE.MatchString(text) && textLen(text) < maxPriceText {
			rec[priceKey(rec)] = text
			continue
		}

		if isHeading(cand.node.Data) || textLen(text) > minTitleText {
			if textLen(text) > textLen(rec["title"]) {
				rec["title"] = text
			}
			continue
		}

		cls := primaryClass(cand.node)
		if cls != "" && !reservedClasses[cls] {
			rec[cls] = text
		} else {
			rec[fmt.Sprintf("field_%d", len(rec))] = text
		}
	}

	for k, v := range rec {
		if textLen(strings.TrimSpace(v)) <= 1 {
			delete(rec, k)
		}
	}

	return rec
}

// priceKey returns "price", or a distinct suffixed key when taken.
// Collisions never overwrite an earlier price.
func priceKey(rec pagesift.Record) string {
	if _, ok := rec["price"]; !ok {
		return "price"
	}
	for n := len(rec); ; n++ {
		key := fmt.Sprintf("price_%d", n)
		if _, ok := rec[key]; !ok {
			return key
		}
	}
}

type textCandidate struct {
	node *html.Node
	text string
}

// textCandidates collects leaf text-bearing descendants: elements in the
// candidate tag set containing no further candidate-tag descendant (to
// avoid double-counting nested wrappers), with trimmed text length in
// [1, maxCandidateText].
func textCandidates(container *html.Node) []textCandidate {
	var out []textCandidate
	for d := range container.Descendants() {
		if d.Type != html.ElementNode || !textCandidateTags[d.Data] {
			continue
		}
		if hasCandidateDescendant(d) {
			continue
		}
		text := strings.TrimSpace(nodeText(d, " "))
		if text == "" || textLen(text) > maxCandidateText {
			continue
		}
		out = append(out, textCandidate{node: d, text: text})
	}
	return out
}

// hasCandidateDescendant reports whether n wraps another text-candidate
// element.
func hasCandidateDescendant(n *html.Node) bool {
	for d := range n.Descendants() {
		if d.Type == html.ElementNode && textCandidateTags[d.Data] {
			return true
		}
	}
	return false
}

func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

// resolveHref resolves href against base, returning href unchanged when
// it cannot be parsed or no base is available.
func resolveHref(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
