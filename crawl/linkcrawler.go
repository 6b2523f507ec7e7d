package crawl

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/kbscrape"
	"golang.org/x/sync/errgroup"
)

// Crawl defaults.
const (
	DefaultMaxDepth     = 2
	DefaultCrawlTimeout = 10 * time.Second
)

// LinkCrawler follows same-host links from a page up to a fixed depth.
// Links are only expanded from pages that look like content, which keeps
// the crawl focused on articles rather than whole-site traversal.
type LinkCrawler struct {
	Fetcher     kbscrape.Fetcher
	Links       kbscrape.LinkSelector
	Visited     kbscrape.VisitedSet
	RateLimiter kbscrape.DomainLimiter // optional

	// Host restricts discovered links to one site.
	Host string

	MaxDepth int
	Timeout  time.Duration
}

func (c *LinkCrawler) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

func (c *LinkCrawler) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultCrawlTimeout
	}
	return c.Timeout
}

// Crawl returns every same-host link reachable from pageURL within the depth
// limit. A page already visited or beyond the depth limit yields nothing.
// Fetch and parse failures end that branch silently.
func (c *LinkCrawler) Crawl(ctx context.Context, pageURL string, depth int) []string {
	maxDepth := c.maxDepth()
	if depth >= maxDepth || ctx.Err() != nil {
		return nil
	}
	if !c.Visited.Visit(pageURL) {
		return nil
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, c.Host); err != nil {
			return nil
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout())
	html, err := c.Fetcher.Fetch(fetchCtx, pageURL)
	cancel()
	if err != nil {
		return nil
	}

	links, err := c.Links.ExtractLinks(html, pageURL)
	if err != nil {
		return nil
	}

	var found []string
	for _, link := range links {
		canonical, ok := kbscrape.Canonicalize(link, c.Host)
		if !ok {
			continue
		}
		found = append(found, canonical)
		if kbscrape.IsContentCandidate(canonical) && depth < maxDepth-1 {
			found = append(found, c.Crawl(ctx, canonical, depth+1)...)
		}
	}
	return found
}

// CrawlSeeds runs an independent depth-0 crawl from the homepage and from
// every content section path under baseURL. The crawls run concurrently and
// share the crawler's visited set.
func (c *LinkCrawler) CrawlSeeds(ctx context.Context, baseURL string) []string {
	var (
		mu    sync.Mutex
		found []string
	)

	var g errgroup.Group
	for _, seed := range Seeds(baseURL) {
		g.Go(func() error {
			links := c.Crawl(ctx, seed, 0)
			mu.Lock()
			found = append(found, links...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return found
}

// Seeds returns the crawl starting points for a site: the homepage followed
// by each content section path.
func Seeds(baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}
	root := base.Scheme + "://" + base.Host

	seeds := make([]string, 0, len(kbscrape.ContentSections)+1)
	seeds = append(seeds, root+"/")
	for _, section := range kbscrape.ContentSections {
		seeds = append(seeds, root+section)
	}
	return seeds
}
