// Package slog provides logging decorators for kbscrape services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kbscrape"
)

var (
	_ kbscrape.SitemapService = (*LoggingSitemapService)(nil)
	_ kbscrape.RobotsService  = (*LoggingRobotsService)(nil)
)

// LoggingSitemapService logs each sitemap resolution. Failures are logged
// at warn level since discovery continues without the sitemap.
type LoggingSitemapService struct {
	next   kbscrape.SitemapService
	logger *slog.Logger
}

func NewLoggingSitemapService(next kbscrape.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, hints []string) (urls []string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "sitemap",
			"site", baseURL,
			"hints", len(hints),
			"urls", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, hints)
}

// LoggingRobotsService logs the robots.txt verdict for a site.
type LoggingRobotsService struct {
	next   kbscrape.RobotsService
	logger *slog.Logger
}

func NewLoggingRobotsService(next kbscrape.RobotsService, logger *slog.Logger) *LoggingRobotsService {
	return &LoggingRobotsService{next: next, logger: logger}
}

func (s *LoggingRobotsService) Check(ctx context.Context, baseURL string) (report *kbscrape.RobotsReport) {
	defer func(begin time.Time) {
		s.logger.Debug("robots",
			"site", baseURL,
			"allowed", report.Allowed,
			"sitemaps", len(report.Sitemaps),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Check(ctx, baseURL)
}
