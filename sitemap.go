package kbscrape

import (
	"context"
	"regexp"
)

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs probes the well-known sitemap locations under baseURL,
	// plus any hint locations (for example robots.txt Sitemap directives),
	// and returns every page URL they list. A sitemap index is resolved
	// one level: each child sitemap's urlset entries are collected.
	//
	// Unreachable or malformed sitemaps are skipped. The only error
	// returned is context cancellation.
	DiscoverURLs(ctx context.Context, baseURL string, hints []string) ([]string, error)
}

// SitemapPaths are the well-known sitemap locations probed under a site root.
var SitemapPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/post-sitemap.xml",
	"/page-sitemap.xml",
	"/news-sitemap.xml",
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}

// CompileURLFilter builds a URLFilter from pattern strings.
// Returns nil when both lists are empty, and EINVALID for a bad pattern.
func CompileURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", p, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}
