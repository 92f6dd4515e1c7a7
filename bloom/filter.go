// Package bloom provides probabilistic URL dedup for crawl frontiers.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks which URLs a crawl has already seen. False positives
// are possible (a never-seen URL may be skipped); false negatives are
// not, so a URL is never crawled twice.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs at the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add marks a URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL has (probably) been seen.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// ApproxCount returns the approximate number of URLs added.
func (f *Filter) ApproxCount() uint {
	return uint(f.f.ApproximatedSize())
}
