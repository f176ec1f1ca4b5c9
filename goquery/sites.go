package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagesift/pagesift"
)

// Ensure SiteRegistry implements pagesift.SiteRegistry at compile time.
var _ pagesift.SiteRegistry = (*SiteRegistry)(nil)

// SiteRegistry is the built-in, domain-keyed lookup of selector tables
// for known commerce platforms. The table is built once at construction
// and never mutated.
type SiteRegistry struct {
	order   []string
	configs map[string]*pagesift.SiteConfig
}

// NewSiteRegistry creates a registry with the built-in platform configs.
func NewSiteRegistry() *SiteRegistry {
	r := &SiteRegistry{configs: make(map[string]*pagesift.SiteConfig)}

	add := func(key string, cfg *pagesift.SiteConfig) {
		r.order = append(r.order, key)
		r.configs[key] = cfg
	}

	add("amazon", &pagesift.SiteConfig{
		Name:      "Amazon",
		Container: []string{"[data-component-type='s-search-result']", ".s-result-item"},
		Title:     []string{"h2 a span", "h2 span"},
		Price:     []string{".a-price .a-offscreen", ".a-price-whole"},
		Image:     []string{".s-image"},
		Link:      []string{"h2 a", "a.a-link-normal"},
		NextPage:  []string{"a.s-pagination-next"},
	})
	add("ebay", &pagesift.SiteConfig{
		Name:      "eBay",
		Container: []string{".s-item"},
		Title:     []string{".s-item__title"},
		Price:     []string{".s-item__price"},
		Image:     []string{".s-item__image img"},
		Link:      []string{".s-item__link"},
		NextPage:  []string{"a.pagination__next"},
	})
	add("jumia", &pagesift.SiteConfig{
		Name:      "Jumia",
		Container: []string{"article.prd"},
		Title:     []string{".name"},
		Price:     []string{".prc"},
		Image:     []string{"img.img"},
		Link:      []string{"a.core"},
		NextPage:  []string{"a[aria-label='Next Page']"},
	})
	add("shopify", &pagesift.SiteConfig{
		Name:      "Shopify",
		Container: []string{".product-card", ".grid-product", ".grid__item"},
		Title:     []string{".product-card__title", ".grid-product__title"},
		Price:     []string{".product-card__price", ".grid-product__price"},
		Image:     []string{"img"},
		Link:      []string{"a"},
		NextPage:  []string{"a[rel='next']"},
	})

	return r
}

// Lookup returns the config whose key is contained in host.
func (r *SiteRegistry) Lookup(host string) (*pagesift.SiteConfig, bool) {
	host = strings.ToLower(host)
	for _, key := range r.order {
		if strings.Contains(host, key) {
			return r.configs[key], true
		}
	}
	return nil, false
}

// List returns the registered platform names.
func (r *SiteRegistry) List() []string {
	names := make([]string, 0, len(r.order))
	for _, key := range r.order {
		names = append(names, r.configs[key].Name)
	}
	return names
}

// Ensure SiteExtractor implements pagesift.Extractor at compile time.
var _ pagesift.Extractor = (*SiteExtractor)(nil)

// SiteExtractor extracts records using a fixed selector table for a
// known platform instead of structural heuristics.
type SiteExtractor struct {
	config *pagesift.SiteConfig
}

// NewSiteExtractor creates an extractor for the given platform config.
func NewSiteExtractor(config *pagesift.SiteConfig) *SiteExtractor {
	return &SiteExtractor{config: config}
}

// Extract finds product containers via the configured selectors and
// pulls title, price, image, and link from each. Records without a
// title or price are dropped.
func (e *SiteExtractor) Extract(markup string, baseURL string) ([]pagesift.Record, error) {
	doc, err := parse(markup)
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINVALID, "parsing markup: %v", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	var containers *goquery.Selection
	for _, sel := range e.config.Container {
		if found := doc.Find(sel); found.Length() > 0 {
			containers = found
			break
		}
	}
	if containers == nil {
		return []pagesift.Record{}, nil
	}

	records := []pagesift.Record{}
	containers.Each(func(_ int, c *goquery.Selection) {
		rec := pagesift.Record{}

		if v := firstText(c, e.config.Title); v != "" {
			rec["title"] = v
		}
		if v := firstText(c, e.config.Price); v != "" {
			rec["price"] = v
		}
		for _, sel := range e.config.Image {
			img := c.Find(sel).First()
			if img.Length() == 0 {
				continue
			}
			for _, attr := range imageSourceAttrs {
				if v, ok := img.Attr(attr); ok && v != "" {
					rec["image"] = v
					break
				}
			}
			break
		}
		for _, sel := range e.config.Link {
			a := c.Find(sel).First()
			if a.Length() == 0 {
				continue
			}
			if href, ok := a.Attr("href"); ok && href != "" {
				rec["link"] = resolveHref(base, href)
			}
			break
		}

		if rec["title"] != "" || rec["price"] != "" {
			records = append(records, rec)
		}
	})

	return records, nil
}

// firstText returns the trimmed text of the first element matching any
// of the selectors, in order.
func firstText(c *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if found := c.Find(sel).First(); found.Length() > 0 {
			if t := strings.TrimSpace(found.Text()); t != "" {
				return t
			}
		}
	}
	return ""
}
