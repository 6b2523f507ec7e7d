package kbscrape

import "context"

// Page represents an extracted content page.
type Page struct {
	URL     string
	Title   string
	Content string // Markdown
}

// MinContentLength is the minimum content size, in characters, for a page to
// count as content.
const MinContentLength = 100

// PageExtractor turns a URL into a Page.
// Implementations hide static vs rendered fetching, block selection and
// markdown conversion.
type PageExtractor interface {
	// ExtractPage returns ENOTFOUND when no fetch strategy produced at least
	// MinContentLength characters of content with a non-empty title.
	ExtractPage(ctx context.Context, url string) (*Page, error)
}

// URLSource discovers candidate content URLs for a target.
// Implementations hide the combination of sitemap parsing and crawling.
type URLSource interface {
	Discover(ctx context.Context, target *CrawlTarget, sitemapHints []string) ([]string, error)
}

// Progress reports progress during page extraction.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is called as pages are processed.
type ProgressFunc func(Progress)

// PageStore persists items to storage with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, item *ContentItem) error
	Commit() error
	Abort() error
}
