package kbscrape

import "context"

// RobotsReport is the advisory outcome of reading a site's robots.txt.
type RobotsReport struct {
	// Allowed is false only when robots.txt was read and disallows the
	// scraper's agent on the site root.
	Allowed bool

	// Sitemaps lists the Sitemap directives found in robots.txt.
	Sitemaps []string
}

// RobotsService reads robots.txt for a site.
type RobotsService interface {
	// Check fetches baseURL/robots.txt. A missing or unreadable file yields
	// an allowing report with no sitemaps; it is never an error.
	Check(ctx context.Context, baseURL string) *RobotsReport
}
