package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kbscrape"
)

var (
	_ kbscrape.Fetcher  = (*LoggingFetcher)(nil)
	_ kbscrape.Renderer = (*LoggingRenderer)(nil)
)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   kbscrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next kbscrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   kbscrape.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next kbscrape.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("render",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, url)
}
