package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/kbscrape"
	"golang.org/x/time/rate"
)

var _ kbscrape.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests per host with a token bucket of burst 1.
// Hosts differing only by case or a leading "www." share a bucket, matching
// how Canonicalize treats them as the same site.
type DomainLimiter struct {
	limit rate.Limit

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewDomainLimiter allows rps requests per second to each host.
// A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &DomainLimiter{limit: limit, buckets: make(map[string]*rate.Limiter)}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if d.limit == rate.Inf {
		return ctx.Err()
	}
	return d.bucket(host).Wait(ctx)
}

func (d *DomainLimiter) bucket(host string) *rate.Limiter {
	key := strings.TrimPrefix(strings.ToLower(host), "www.")

	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buckets[key]
	if !ok {
		b = rate.NewLimiter(d.limit, 1)
		d.buckets[key] = b
	}
	return b
}
