package crawl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/kbscrape"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight page extractions.
const DefaultConcurrency = 5

// Scraper runs the full pipeline for one website: robots.txt check,
// discovery, bounded concurrent extraction, and classification.
type Scraper struct {
	Robots     kbscrape.RobotsService // optional
	Source     kbscrape.URLSource
	Extractor  kbscrape.PageExtractor
	Classifier kbscrape.Classifier

	Logger      *slog.Logger
	Concurrency int
	Progress    kbscrape.ProgressFunc
}

// pageResult holds the outcome of extracting a single URL.
type pageResult struct {
	position int
	url      string
	item     *kbscrape.ContentItem
	err      error
}

// ScrapeWebsite scrapes the site named by input. It never returns nil and
// never panics: invalid input and unexpected failures are reported in the
// result's Error field, and pages that fail extraction are left out.
// Site is the normalized base URL, or the raw input when it is invalid.
func (s *Scraper) ScrapeWebsite(ctx context.Context, input string) (result *kbscrape.ScrapeResult) {
	result = &kbscrape.ScrapeResult{
		Site:  input,
		Items: []*kbscrape.ContentItem{},
	}
	defer func() {
		if r := recover(); r != nil {
			result.Error = kbscrape.ErrorMessage(kbscrape.Errorf(kbscrape.EINTERNAL, "scrape panicked: %v", r))
		}
		result.Stats = kbscrape.NewStats(result.Items)
	}()

	logger := s.logger()

	target, err := kbscrape.NewCrawlTarget(input)
	if err != nil {
		result.Error = kbscrape.ErrorMessage(err)
		return result
	}
	result.Site = target.BaseURL
	logger.Info("scrape started", "site", target.BaseURL)

	var hints []string
	if s.Robots != nil {
		report := s.Robots.Check(ctx, target.BaseURL)
		if report != nil {
			if !report.Allowed {
				logger.Warn("robots.txt disallows crawling, proceeding anyway", "site", target.BaseURL)
			}
			hints = report.Sitemaps
		}
	}

	urls, err := s.Source.Discover(ctx, target, hints)
	if err != nil {
		result.Error = kbscrape.ErrorMessage(err)
		return result
	}
	logger.Info("discovered urls", "site", target.BaseURL, "count", len(urls))

	for _, r := range s.extractAll(ctx, urls) {
		if r.err != nil {
			logger.Debug("page skipped", "url", r.url, "err", r.err)
			continue
		}
		result.Items = append(result.Items, r.item)
	}

	logger.Info("scrape finished", "site", target.BaseURL, "items", len(result.Items))
	return result
}

// extractAll extracts every URL with bounded concurrency and returns the
// outcomes in input order.
func (s *Scraper) extractAll(ctx context.Context, urls []string) []pageResult {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				resultCh <- s.extractOne(ctx, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, len(urls))
	completed := 0
	for r := range resultCh {
		completed++
		results[r.position] = r
		if s.Progress != nil {
			s.Progress(kbscrape.Progress{
				URL:       r.url,
				Completed: completed,
				Total:     len(urls),
				Error:     r.err,
			})
		}
	}
	return results
}

// extractOne extracts and classifies a single URL. A panic in any stage only
// loses that page.
func (s *Scraper) extractOne(ctx context.Context, position int, url string) (r pageResult) {
	r = pageResult{position: position, url: url}
	defer func() {
		if p := recover(); p != nil {
			r.item = nil
			r.err = kbscrape.Errorf(kbscrape.EINTERNAL, "extract %s panicked: %v", url, p)
		}
	}()

	page, err := s.Extractor.ExtractPage(ctx, url)
	if err != nil {
		r.err = fmt.Errorf("extract %s: %w", url, err)
		return r
	}
	item := &kbscrape.ContentItem{
		Title:       page.Title,
		Content:     page.Content,
		ContentType: s.Classifier.Classify(url, page.Content),
		SourceURL:   url,
	}
	if err := item.Validate(); err != nil {
		r.err = fmt.Errorf("extract %s: %w", url, err)
		return r
	}
	r.item = item
	return r
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
