package mock

import (
	"context"

	"github.com/fwojciec/kbscrape"
)

var (
	_ kbscrape.SitemapService = (*SitemapService)(nil)
	_ kbscrape.RobotsService  = (*RobotsService)(nil)
	_ kbscrape.LinkSelector   = (*LinkSelector)(nil)
	_ kbscrape.URLSource      = (*URLSource)(nil)
	_ kbscrape.DomainLimiter  = (*DomainLimiter)(nil)
)

// SitemapService is a mock implementation of kbscrape.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, hints []string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, hints []string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, hints)
}

// RobotsService is a mock implementation of kbscrape.RobotsService.
type RobotsService struct {
	CheckFn func(ctx context.Context, baseURL string) *kbscrape.RobotsReport
}

func (s *RobotsService) Check(ctx context.Context, baseURL string) *kbscrape.RobotsReport {
	return s.CheckFn(ctx, baseURL)
}

// LinkSelector is a mock implementation of kbscrape.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, pageURL string) ([]string, error)
}

func (s *LinkSelector) ExtractLinks(html string, pageURL string) ([]string, error) {
	return s.ExtractLinksFn(html, pageURL)
}

// URLSource is a mock implementation of kbscrape.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, target *kbscrape.CrawlTarget, sitemapHints []string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, target *kbscrape.CrawlTarget, sitemapHints []string) ([]string, error) {
	return s.DiscoverFn(ctx, target, sitemapHints)
}

// DomainLimiter is a mock implementation of kbscrape.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
