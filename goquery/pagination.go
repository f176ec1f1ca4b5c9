package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagesift/pagesift"
)

// Ensure Paginator implements pagesift.PaginationResolver at compile time.
var _ pagesift.PaginationResolver = (*Paginator)(nil)

// nextMarkers is the ordered list of link texts that indicate a
// next-page control. Matching is case-insensitive substring matching on
// the anchor's visible text.
var nextMarkers = []string{"Next", "next", ">", "»"}

// Paginator discovers next-page links.
type Paginator struct{}

// NewPaginator creates a new Paginator.
func NewPaginator() *Paginator {
	return &Paginator{}
}

// NextPage resolves the next-page URL: an explicit link-relation element
// wins, then the first anchor whose visible text matches one of the
// next markers. Returns false when no candidate exists or the chosen
// candidate resolves to currentURL itself, which prevents single-page
// loops.
func (p *Paginator) NextPage(markup string, currentURL string) (string, bool) {
	current, err := url.Parse(currentURL)
	if err != nil {
		return "", false
	}

	doc, err := parse(markup)
	if err != nil {
		return "", false
	}

	if href, ok := doc.Find("link[rel='next']").First().Attr("href"); ok && href != "" {
		return p.resolve(current, currentURL, href)
	}

	for _, marker := range nextMarkers {
		lower := strings.ToLower(marker)
		found := ""
		doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			text := strings.ToLower(strings.TrimSpace(a.Text()))
			if text == "" || !strings.Contains(text, lower) {
				return true
			}
			if href, ok := a.Attr("href"); ok && href != "" {
				found = href
				return false
			}
			return true
		})
		if found != "" {
			return p.resolve(current, currentURL, found)
		}
	}

	return "", false
}

// resolve applies the loop guard: a candidate textually equal to the
// current URL yields no next page.
func (p *Paginator) resolve(current *url.URL, currentURL string, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := current.ResolveReference(ref).String()
	if resolved == currentURL {
		return "", false
	}
	return resolved, true
}
