package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kbscrape"
)

var (
	_ kbscrape.BlockFinder = (*SelectorFinder)(nil)
	_ kbscrape.BlockFinder = (*LargestBlockFinder)(nil)
)

// ContentSelectors are the common main-content containers, in priority order.
var ContentSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".content",
	"#content",
	".post",
	".entry-content",
	".post-content",
	".article-content",
	".blog-post",
	".single-post",
	`[itemprop="articleBody"]`,
	".post-body",
	".article-body",
	".content-body",
	".main-content",
}

const (
	selectorNoise = "script, style, nav, aside, .sidebar, .advertisement"
	blockNoise    = "nav, aside, .sidebar, .ad, .advertisement"
	blockElements = "div, section, article"
)

// SelectorFinder returns the first match of each content selector, with
// scripts, styles, navigation and ads removed.
type SelectorFinder struct {
	selectors []string
}

// NewSelectorFinder creates a SelectorFinder using ContentSelectors.
func NewSelectorFinder() *SelectorFinder {
	return &SelectorFinder{selectors: ContentSelectors}
}

// FindBlocks returns one block per matching selector, in selector order.
// Selectors with no match contribute nothing.
func (f *SelectorFinder) FindBlocks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	var blocks []string
	for _, selector := range f.selectors {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		el.Find(selectorNoise).Remove()

		inner, err := el.Html()
		if err != nil {
			continue
		}
		blocks = append(blocks, inner)
	}
	return blocks, nil
}

// LargestBlockFinder returns the div, section or article with the most
// plain text once navigation and ads are removed.
type LargestBlockFinder struct{}

// NewLargestBlockFinder creates a new LargestBlockFinder.
func NewLargestBlockFinder() *LargestBlockFinder {
	return &LargestBlockFinder{}
}

// FindBlocks returns at most one block. The first element seen wins ties.
func (f *LargestBlockFinder) FindBlocks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(blockElements).Find(blockNoise).Remove()

	var largest *goquery.Selection
	largestLen := 0
	doc.Find(blockElements).Each(func(_ int, sel *goquery.Selection) {
		n := utf8.RuneCountInString(strings.TrimSpace(sel.Text()))
		if n > largestLen {
			largestLen = n
			largest = sel
		}
	})

	if largest == nil {
		return nil, nil
	}

	inner, err := largest.Html()
	if err != nil {
		return nil, err
	}
	return []string{inner}, nil
}
