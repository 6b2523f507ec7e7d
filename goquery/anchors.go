// Package goquery implements HTML inspection with PuerkitoBio/goquery:
// anchor extraction, title selection and selector-based content blocks.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kbscrape"
)

var _ kbscrape.LinkSelector = (*AnchorSelector)(nil)

// AnchorSelector extracts every a[href] from a page.
type AnchorSelector struct{}

// NewAnchorSelector creates a new AnchorSelector.
func NewAnchorSelector() *AnchorSelector {
	return &AnchorSelector{}
}

// ExtractLinks returns the resolved, deduplicated hrefs in document order.
// Cross-host links are kept; filtering by host is the caller's concern.
func (s *AnchorSelector) ExtractLinks(html string, pageURL string) ([]string, error) {
	page, err := url.Parse(pageURL)
	if err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved, ok := kbscrape.ResolveReference(page, href)
		if !ok || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return links, nil
}
