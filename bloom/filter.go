// Package bloom provides the visited-URL set that keeps a crawl from
// revisiting a page, backed by a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks URLs a crawl has already visited. False positives are
// possible (a never-visited URL may test as visited, at worst stopping
// pagination a page early); false negatives are not, so a crawl can
// never loop.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL as visited.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL has (probably) been visited.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of visited URLs.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
