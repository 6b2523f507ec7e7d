package crawl

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/kbscrape"
)

var _ kbscrape.PageExtractor = (*PageExtractor)(nil)

// DefaultStaticTimeout bounds the fast-path fetch.
const DefaultStaticTimeout = 15 * time.Second

// PageExtractor extracts a page with a static fetch first and falls back to
// a rendering browser when the static HTML carries too little content.
type PageExtractor struct {
	Fetcher  kbscrape.Fetcher
	Renderer kbscrape.Renderer // nil disables the slow path
	Chain    *ContentChain
	Titles   kbscrape.TitleExtractor

	StaticTimeout time.Duration
}

// ExtractPage returns the page's title and markdown content. It returns an
// ENOTFOUND error when neither path yields enough content or a title.
func (e *PageExtractor) ExtractPage(ctx context.Context, url string) (*kbscrape.Page, error) {
	page, err := e.static(ctx, url)
	if err == nil && utf8.RuneCountInString(page.Content) >= kbscrape.MinContentLength {
		return e.finish(page)
	}

	if e.Renderer != nil && ctx.Err() == nil {
		html, rerr := e.Renderer.Render(ctx, url)
		switch {
		case rerr == nil:
			page, err = e.extract(url, html), nil
		case page == nil:
			err = rerr
		}
	}

	if err != nil {
		return nil, err
	}
	return e.finish(page)
}

func (e *PageExtractor) static(ctx context.Context, url string) (*kbscrape.Page, error) {
	timeout := e.StaticTimeout
	if timeout <= 0 {
		timeout = DefaultStaticTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	html, err := e.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return e.extract(url, html), nil
}

func (e *PageExtractor) extract(url, html string) *kbscrape.Page {
	return &kbscrape.Page{
		URL:     url,
		Title:   strings.TrimSpace(e.Titles.ExtractTitle(html)),
		Content: e.Chain.Extract(html),
	}
}

func (e *PageExtractor) finish(page *kbscrape.Page) (*kbscrape.Page, error) {
	if utf8.RuneCountInString(page.Content) < kbscrape.MinContentLength {
		return nil, kbscrape.Errorf(kbscrape.ENOTFOUND, "insufficient content at %s", page.URL)
	}
	if page.Title == "" {
		return nil, kbscrape.Errorf(kbscrape.ENOTFOUND, "no title at %s", page.URL)
	}
	return page, nil
}
