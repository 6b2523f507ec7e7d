package crawl

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fwojciec/kbscrape"
	"golang.org/x/sync/errgroup"
)

var _ kbscrape.URLSource = (*Discoverer)(nil)

// Discoverer combines sitemap discovery with seeded link crawling and
// reduces the union to a sorted set of candidate content URLs.
type Discoverer struct {
	Sitemaps    kbscrape.SitemapService
	Fetcher     kbscrape.Fetcher
	Links       kbscrape.LinkSelector
	RateLimiter kbscrape.DomainLimiter // optional

	// NewVisitedSet returns a fresh visited set for each Discover call.
	NewVisitedSet func() kbscrape.VisitedSet

	// Filter applies user include/exclude patterns after the content
	// heuristics. Nil keeps everything.
	Filter *kbscrape.URLFilter

	MaxDepth     int
	CrawlTimeout time.Duration
}

// Discover runs the sitemap resolver and every seed crawl concurrently and
// returns the filtered, deduplicated, sorted union. Failures inside either
// source only shrink the result; the only error is context cancellation.
func (d *Discoverer) Discover(ctx context.Context, target *kbscrape.CrawlTarget, sitemapHints []string) ([]string, error) {
	crawler := &LinkCrawler{
		Fetcher:     d.Fetcher,
		Links:       d.Links,
		Visited:     d.NewVisitedSet(),
		RateLimiter: d.RateLimiter,
		Host:        target.Host(),
		MaxDepth:    d.MaxDepth,
		Timeout:     d.CrawlTimeout,
	}

	var (
		mu  sync.Mutex
		raw []string
	)
	collect := func(urls []string) {
		mu.Lock()
		raw = append(raw, urls...)
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		urls, err := d.Sitemaps.DiscoverURLs(ctx, target.BaseURL, sitemapHints)
		if err == nil {
			collect(urls)
		}
		return nil
	})
	g.Go(func() error {
		collect(crawler.CrawlSeeds(ctx, target.BaseURL))
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return d.reduce(raw, target), nil
}

// reduce keeps likely content URLs in canonical form and sorts them.
func (d *Discoverer) reduce(raw []string, target *kbscrape.CrawlTarget) []string {
	seen := make(map[string]bool, len(raw))
	urls := make([]string, 0, len(raw))
	for _, u := range raw {
		if !kbscrape.KeepCandidate(u, target.BaseURL) {
			continue
		}
		canonical, ok := kbscrape.Canonicalize(u, target.Host())
		if !ok {
			continue
		}
		if !kbscrape.KeepCandidate(canonical, target.BaseURL) {
			continue
		}
		if !d.Filter.Match(canonical) {
			continue
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		urls = append(urls, canonical)
	}
	sort.Strings(urls)
	return urls
}
