package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/kbscrape"
	"github.com/fwojciec/kbscrape/mock"
	kbslog "github.com/fwojciec/kbscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingPageExtractor_ExtractPage(t *testing.T) {
	t.Parallel()

	t.Run("logs extracted character count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageExtractor{
			ExtractPageFn: func(_ context.Context, url string) (*kbscrape.Page, error) {
				return &kbscrape.Page{URL: url, Title: "Post", Content: strings.Repeat("x", 150)}, nil
			},
		}

		e := kbslog.NewLoggingPageExtractor(inner, logger)
		page, err := e.ExtractPage(context.Background(), "https://example.com/blog/post")

		require.NoError(t, err)
		assert.Equal(t, "Post", page.Title)
		output := buf.String()
		assert.Contains(t, output, "extract page")
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "chars=150")
	})

	t.Run("logs missing content at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageExtractor{
			ExtractPageFn: func(_ context.Context, url string) (*kbscrape.Page, error) {
				return nil, kbscrape.Errorf(kbscrape.ENOTFOUND, "insufficient content at %s", url)
			},
		}

		e := kbslog.NewLoggingPageExtractor(inner, logger)
		_, err := e.ExtractPage(context.Background(), "https://example.com/blog/post")

		require.Error(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("logs other errors at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageExtractor{
			ExtractPageFn: func(_ context.Context, _ string) (*kbscrape.Page, error) {
				return nil, errors.New("HTTP 500")
			},
		}

		e := kbslog.NewLoggingPageExtractor(inner, logger)
		_, err := e.ExtractPage(context.Background(), "https://example.com/blog/post")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"HTTP 500\"")
	})
}
