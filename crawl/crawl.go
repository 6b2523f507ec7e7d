// Package crawl orchestrates knowledge base scraping.
// It coordinates robots.txt checks, URL discovery through sitemaps and
// bounded link crawling, two-tier page extraction, and classification.
package crawl
