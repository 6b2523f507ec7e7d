package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/kbscrape"
)

// DefaultSitemapTimeout bounds each individual sitemap request.
const DefaultSitemapTimeout = 10 * time.Second

// Ensure SitemapService implements kbscrape.SitemapService.
var _ kbscrape.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client  *http.Client
	timeout time.Duration
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithSitemapTimeout sets the per-request timeout.
func WithSitemapTimeout(d time.Duration) SitemapOption {
	return func(s *SitemapService) {
		s.timeout = d
	}
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, a client carrying the scraper's User-Agent is used.
func NewSitemapService(client *http.Client, opts ...SitemapOption) *SitemapService {
	if client == nil {
		client = NewClient(nil, 0)
	}
	s := &SitemapService{client: client, timeout: DefaultSitemapTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverURLs collects page URLs from the well-known sitemap locations under
// baseURL and from hints. Returns an empty slice (not nil) if nothing is found.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, hints []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locations := sitemapLocations(baseURL, hints)

	urls := []string{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for _, loc := range locations {
		found := s.processSitemap(ctx, loc, seenSitemaps, true)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, u := range found {
			if !seenURLs[u] {
				seenURLs[u] = true
				urls = append(urls, u)
			}
		}
	}

	return urls, nil
}

// sitemapLocations lists the well-known paths under the site root followed
// by any hints not already present.
func sitemapLocations(baseURL string, hints []string) []string {
	root := strings.TrimRight(baseURL, "/")
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		root = u.Scheme + "://" + u.Host
	}

	seen := make(map[string]bool)
	var locs []string
	add := func(loc string) {
		loc = strings.TrimSpace(loc)
		if loc == "" || seen[loc] {
			return
		}
		seen[loc] = true
		locs = append(locs, loc)
	}

	for _, p := range kbscrape.SitemapPaths {
		add(root + p)
	}
	for _, h := range hints {
		add(h)
	}
	return locs
}

// processSitemap fetches and parses one sitemap. Failures yield nil.
// Child sitemaps listed in an index are followed only when allowIndex is
// set, so resolution stops one level below the first index.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool, allowIndex bool) []string {
	if ctx.Err() != nil {
		return nil
	}

	if seen[sitemapURL] {
		return nil
	}
	seen[sitemapURL] = true

	root, err := s.fetchXML(ctx, sitemapURL)
	if err != nil {
		return nil
	}

	switch root.Tag {
	case "sitemapindex":
		if !allowIndex {
			return nil
		}
		var all []string
		for _, child := range locs(root, "sitemap") {
			all = append(all, s.processSitemap(ctx, child, seen, false)...)
		}
		return all
	case "urlset":
		return locs(root, "url")
	default:
		return nil
	}
}

// locs returns the trimmed, non-empty <loc> text of each child element
// named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (s *SitemapService) fetchXML(ctx context.Context, targetURL string) (*etree.Element, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(io.LimitReader(resp.Body, maxBodySize)); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}
	return root, nil
}
