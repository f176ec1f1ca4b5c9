package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Group size bounds for repeating-structure candidates. Fewer than three
// members is singleton noise; more than two hundred is a page-wide
// container like body or nav.
const (
	minGroupSize = 3
	maxGroupSize = 200
)

// minCandidateText is the minimum trimmed text length for an element to
// be considered a card candidate.
const minCandidateText = 15

// candidateSelector enumerates the tags that can host a repeating card.
const candidateSelector = "div, article, li, a"

// Detector finds repeating "card" patterns in a page. It runs two
// independent strategies: a scored primary path that weights price,
// image, and link presence, and a signature-based fallback that relies
// on raw structural repetition when markup lacks strong class hooks.
// Containers composes the two.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// group aggregates the members of one structural signature.
type group struct {
	order     int // first-seen position, for deterministic tie-breaks
	members   []*html.Node
	totalText int
	hasImg    int
	hasLink   int
	hasPrice  int
}

// HasRepeating reports whether the page contains a qualifying repeating
// structure on the primary path. Used by the strategy classifier.
func (d *Detector) HasRepeating(markup string) bool {
	doc, err := parse(markup)
	if err != nil {
		return false
	}
	_, _, ok := d.bestGroup(doc)
	return ok
}

// BestSignature returns the highest-scoring structural signature for a
// repeating card pattern, or false if no group survives filtering.
// Repeated runs on identical markup return the same signature.
func (d *Detector) BestSignature(markup string) (string, bool) {
	doc, err := parse(markup)
	if err != nil {
		return "", false
	}
	sig, _, ok := d.bestGroup(doc)
	return sig, ok
}

// containers returns the member nodes of the detected repeating
// structure: the best scored group when the primary path finds one, the
// fallback signature group otherwise. This is the single selection point
// composing the two strategies.
func (d *Detector) containers(doc *goquery.Document) []*html.Node {
	if _, g, ok := d.bestGroup(doc); ok {
		return g.members
	}
	return d.fallbackContainers(doc)
}

// bestGroup runs the primary scored path over the document.
func (d *Detector) bestGroup(doc *goquery.Document) (string, *group, bool) {
	groups := d.collect(doc)

	bestScore := 0.0
	bestOrder := 0
	var bestSig string
	var best *group

	for sig, g := range groups {
		n := len(g.members)
		if n < minGroupSize || n > maxGroupSize {
			continue
		}

		avgText := float64(g.totalText) / float64(n)
		imgRatio := float64(g.hasImg) / float64(n)
		linkRatio := float64(g.hasLink) / float64(n)
		priceRatio := float64(g.hasPrice) / float64(n)
		diversity := tagDiversity(g.members[0])

		// Base score is the member count; multipliers reward the
		// signals that distinguish commerce/list cards from incidental
		// repeated layout (nav items, ads). Price presence is weighted
		// heaviest.
		score := float64(n)
		score *= 1 + imgRatio
		score *= 1 + linkRatio
		score *= 1 + priceRatio*5
		score *= 1 + float64(diversity)/10
		if avgText > 40 {
			score *= 1.5
		}

		if best == nil || score > bestScore || (score == bestScore && g.order < bestOrder) {
			bestScore = score
			bestOrder = g.order
			bestSig = sig
			best = g
		}
	}

	if best == nil {
		return "", nil, false
	}
	return bestSig, best, true
}

// collect groups candidate elements by structural signature.
func (d *Detector) collect(doc *goquery.Document) map[string]*group {
	groups := make(map[string]*group)
	order := 0

	doc.Find(candidateSelector).Each(func(_ int, sel *goquery.Selection) {
		n := sel.Nodes[0]

		// A card must contain at least one descendant link or image.
		img := firstDescendant(n, "img") != nil
		link := firstDescendant(n, "a") != nil
		if !img && !link {
			return
		}

		text := nodeText(n, " ")
		if textLen(text) < minCandidateText {
			return
		}

		sig := nodeSignature(n)
		g, ok := groups[sig]
		if !ok {
			g = &group{order: order}
			order++
			groups[sig] = g
		}

		g.members = append(g.members, n)
		g.totalText += textLen(text)
		if img {
			g.hasImg++
		}
		if link {
			g.hasLink++
		}
		if priceRE.MatchString(text) {
			g.hasPrice++
		}
	})

	return groups
}

// nodeSignature derives the structural signature of an element:
// tag plus primary class, tag plus id, or the bare tag name.
func nodeSignature(n *html.Node) string {
	if c := primaryClass(n); c != "" {
		return n.Data + "." + c
	}
	if id := attrVal(n, "id"); id != "" {
		return n.Data + "#" + id
	}
	return n.Data
}

// fallbackSelector restricts the fallback path to block-level tags.
const fallbackSelector = "div, article, li"

// fallbackContainers groups elements by tag plus sorted class list and
// returns the largest group (more than two members) whose first member
// has more than one non-empty text-bearing descendant. This trades the
// price/image weighting of the primary path for raw structural
// repetition.
func (d *Detector) fallbackContainers(doc *goquery.Document) []*html.Node {
	type sigGroup struct {
		order   int
		members []*html.Node
	}
	groups := make(map[string]*sigGroup)
	order := 0

	doc.Find(fallbackSelector).Each(func(_ int, sel *goquery.Selection) {
		n := sel.Nodes[0]

		if strings.TrimSpace(nodeText(n, " ")) == "" {
			return
		}
		// Leaf wrappers carry no structure worth grouping.
		if !hasElementChild(n) {
			return
		}

		sig := n.Data
		if classes := sortedClasses(n); classes != "" {
			sig += "." + classes
		}

		g, ok := groups[sig]
		if !ok {
			g = &sigGroup{order: order}
			order++
			groups[sig] = g
		}
		g.members = append(g.members, n)
	})

	var best *sigGroup
	for _, g := range groups {
		if len(g.members) <= 2 {
			continue
		}
		if textDescendants(g.members[0]) <= 1 {
			continue
		}
		if best == nil || len(g.members) > len(best.members) ||
			(len(g.members) == len(best.members) && g.order < best.order) {
			best = g
		}
	}
	if best == nil {
		return nil
	}
	return best.members
}

// hasElementChild reports whether n has at least one direct element child.
func hasElementChild(n *html.Node) bool {
	for c := range n.ChildNodes() {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}
