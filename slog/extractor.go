package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/kbscrape"
)

var _ kbscrape.PageExtractor = (*LoggingPageExtractor)(nil)

// LoggingPageExtractor wraps a PageExtractor with logging. Pages without
// enough content are logged at debug level since they are expected.
type LoggingPageExtractor struct {
	next   kbscrape.PageExtractor
	logger *slog.Logger
}

// NewLoggingPageExtractor creates a new LoggingPageExtractor.
func NewLoggingPageExtractor(next kbscrape.PageExtractor, logger *slog.Logger) *LoggingPageExtractor {
	return &LoggingPageExtractor{next: next, logger: logger}
}

// ExtractPage delegates to the wrapped extractor and logs the operation.
func (e *LoggingPageExtractor) ExtractPage(ctx context.Context, url string) (page *kbscrape.Page, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if kbscrape.ErrorCode(err) == kbscrape.ENOTFOUND {
			level = slog.LevelDebug
		}
		chars := 0
		if page != nil {
			chars = utf8.RuneCountInString(page.Content)
		}
		e.logger.Log(ctx, level, "extract page",
			"url", url,
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractPage(ctx, url)
}
