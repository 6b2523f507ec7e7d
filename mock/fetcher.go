package mock

import (
	"context"

	"github.com/fwojciec/kbscrape"
)

var (
	_ kbscrape.Fetcher  = (*Fetcher)(nil)
	_ kbscrape.Renderer = (*Renderer)(nil)
)

// Fetcher is a mock implementation of kbscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

// Renderer is a mock implementation of kbscrape.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
}

func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}
