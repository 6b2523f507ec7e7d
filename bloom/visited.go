// Package bloom provides crawl deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/kbscrape"
)

var _ kbscrape.VisitedSet = (*VisitedSet)(nil)

// Default sizing for a single scrape run.
const (
	DefaultCapacity = 10000
	DefaultFPRate   = 0.001
)

// VisitedSet is a concurrency-safe kbscrape.VisitedSet backed by a Bloom
// filter. A false positive makes a URL look visited, so it is skipped; a URL
// is never crawled twice.
type VisitedSet struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewVisitedSet creates a set sized for n expected URLs with the given false
// positive rate.
func NewVisitedSet(n uint, fpRate float64) *VisitedSet {
	return &VisitedSet{f: bloom.NewWithEstimates(n, fpRate)}
}

// NewDefaultVisitedSet creates a set with DefaultCapacity and DefaultFPRate.
func NewDefaultVisitedSet() *VisitedSet {
	return NewVisitedSet(DefaultCapacity, DefaultFPRate)
}

// Visit marks url as visited and reports whether it was new.
func (s *VisitedSet) Visit(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.f.TestAndAddString(url)
}

// Contains reports whether url may have been visited.
func (s *VisitedSet) Contains(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.TestString(url)
}

// EstimatedCount returns the approximate number of visited URLs.
func (s *VisitedSet) EstimatedCount() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint(s.f.ApproximatedSize())
}
