package crawl_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/kbscrape"
	"github.com/fwojciec/kbscrape/crawl"
	"github.com/fwojciec/kbscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughChain treats the fetched HTML as the content block.
func passthroughChain() *crawl.ContentChain {
	finder := &mock.BlockFinder{
		FindBlocksFn: func(html string) ([]string, error) {
			return []string{html}, nil
		},
	}
	return &crawl.ContentChain{
		Converter:  identity,
		Strategies: []crawl.Strategy{{Name: "all", Blocks: finder}},
	}
}

func fixedTitle(title string) *mock.TitleExtractor {
	return &mock.TitleExtractor{
		ExtractTitleFn: func(_ string) string { return title },
	}
}

func TestPageExtractor_ExtractPage(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("static content ", 10)
	rendered := strings.Repeat("rendered content ", 10)

	t.Run("uses the static fetch when it has enough content", func(t *testing.T) {
		t.Parallel()

		e := &crawl.PageExtractor{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return long, nil
				},
			},
			Renderer: &mock.Renderer{
				RenderFn: func(_ context.Context, _ string) (string, error) {
					t.Fatal("renderer should not be called")
					return "", nil
				},
			},
			Chain:  passthroughChain(),
			Titles: fixedTitle("A Good Title"),
		}

		page, err := e.ExtractPage(context.Background(), "https://example.com/blog/post")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/blog/post", page.URL)
		assert.Equal(t, "A Good Title", page.Title)
		assert.Equal(t, strings.TrimSpace(long), page.Content)
	})

	t.Run("renders when static content is short", func(t *testing.T) {
		t.Parallel()

		e := &crawl.PageExtractor{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<div id=app></div>", nil
				},
			},
			Renderer: &mock.Renderer{
				RenderFn: func(_ context.Context, _ string) (string, error) {
					return rendered, nil
				},
			},
			Chain:  passthroughChain(),
			Titles: fixedTitle("Single Page App"),
		}

		page, err := e.ExtractPage(context.Background(), "https://example.com/app")

		require.NoError(t, err)
		assert.Equal(t, strings.TrimSpace(rendered), page.Content)
	})

	t.Run("renders when static fetch fails", func(t *testing.T) {
		t.Parallel()

		e := &crawl.PageExtractor{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("HTTP 403")
				},
			},
			Renderer: &mock.Renderer{
				RenderFn: func(_ context.Context, _ string) (string, error) {
					return rendered, nil
				},
			},
			Chain:  passthroughChain(),
			Titles: fixedTitle("Protected Page"),
		}

		page, err := e.ExtractPage(context.Background(), "https://example.com/blog/post")

		require.NoError(t, err)
		assert.Equal(t, "Protected Page", page.Title)
	})

	t.Run("returns not found when both paths are short", func(t *testing.T) {
		t.Parallel()

		e := &crawl.PageExtractor{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "short", nil
				},
			},
			Renderer: &mock.Renderer{
				RenderFn: func(_ context.Context, _ string) (string, error) {
					return "still short", nil
				},
			},
			Chain:  passthroughChain(),
			Titles: fixedTitle("Some Title"),
		}

		_, err := e.ExtractPage(context.Background(), "https://example.com/blog/post")

		assert.Equal(t, kbscrape.ENOTFOUND, kbscrape.ErrorCode(err))
	})

	t.Run("returns not found when static is short and rendering fails", func(t *testing.T) {
		t.Parallel()

		e := &crawl.PageExtractor{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "short", nil
				},
			},
			Renderer: &mock.Renderer{
				RenderFn: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("browser crashed")
				},
			},
			Chain:  passthroughChain(),
			Titles: fixedTitle("Some Title"),
		}

		_, err := e.ExtractPage(context.Background(), "https://example.com/blog/post")

		assert.Equal(t, kbscrape.ENOTFOUND, kbscrape.ErrorCode(err))
	})

	t.Run("returns the render error when both paths fail", func(t *testing.T) {
		t.Parallel()

		e := &crawl.PageExtractor{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("HTTP 500")
				},
			},
			Renderer: &mock.Renderer{
				RenderFn: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("browser crashed")
				},
			},
			Chain:  passthroughChain(),
			Titles: fixedTitle("Some Title"),
		}

		_, err := e.ExtractPage(context.Background(), "https://example.com/blog/post")

		assert.EqualError(t, err, "browser crashed")
	})

	t.Run("returns the static error without a renderer", func(t *testing.T) {
		t.Parallel()

		e := &crawl.PageExtractor{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("HTTP 500")
				},
			},
			Chain:  passthroughChain(),
			Titles: fixedTitle("Some Title"),
		}

		_, err := e.ExtractPage(context.Background(), "https://example.com/blog/post")

		assert.EqualError(t, err, "HTTP 500")
	})

	t.Run("returns not found when the title is empty", func(t *testing.T) {
		t.Parallel()

		e := &crawl.PageExtractor{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return long, nil
				},
			},
			Chain:  passthroughChain(),
			Titles: fixedTitle("   "),
		}

		_, err := e.ExtractPage(context.Background(), "https://example.com/blog/post")

		assert.Equal(t, kbscrape.ENOTFOUND, kbscrape.ErrorCode(err))
	})

	t.Run("keeps untitled pages with enough content", func(t *testing.T) {
		t.Parallel()

		e := &crawl.PageExtractor{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return long, nil
				},
			},
			Chain:  passthroughChain(),
			Titles: fixedTitle(kbscrape.UntitledTitle),
		}

		page, err := e.ExtractPage(context.Background(), "https://example.com/blog/post")

		require.NoError(t, err)
		assert.Equal(t, kbscrape.UntitledTitle, page.Title)
	})
}
