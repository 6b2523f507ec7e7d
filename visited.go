package kbscrape

import "context"

// VisitedSet tracks URLs already crawled during a single run.
// Implementations must be safe for concurrent use.
type VisitedSet interface {
	// Visit marks the URL as visited. It returns true when the URL was not
	// seen before; the check and the insert are one atomic step.
	Visit(url string) bool

	// Contains reports whether the URL has been visited.
	Contains(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
