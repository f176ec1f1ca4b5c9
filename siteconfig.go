package pagesift

// SiteConfig holds fixed CSS selectors for a known platform. Selector
// lists are tried in order; the first match wins. Configs are immutable
// once built.
type SiteConfig struct {
	Name      string
	Container []string
	Title     []string
	Price     []string
	Image     []string
	Link      []string
	NextPage  []string
}

// SiteRegistry is an immutable, domain-keyed lookup of selector tables
// for known platforms, built once at startup. Unknown domains fall back
// to heuristic detection.
type SiteRegistry interface {
	// Lookup returns the config whose domain key is contained in host.
	// The bool result is false when no known platform matches.
	Lookup(host string) (*SiteConfig, bool)

	// List returns the registered platform names.
	List() []string
}
