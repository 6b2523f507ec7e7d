package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kbscrape"
)

var _ kbscrape.TitleExtractor = (*TitleExtractor)(nil)

// minTitleLength is the length a candidate title must exceed.
const minTitleLength = 5

// titleCandidates are tried in order; the first qualifying value wins.
var titleCandidates = []func(*goquery.Document) string{
	func(d *goquery.Document) string { return d.Find("h1").First().Text() },
	func(d *goquery.Document) string { return d.Find("title").Text() },
	func(d *goquery.Document) string { return d.Find(`meta[property="og:title"]`).AttrOr("content", "") },
	func(d *goquery.Document) string { return d.Find(`meta[name="twitter:title"]`).AttrOr("content", "") },
	func(d *goquery.Document) string { return d.Find("article header h1").Text() },
	func(d *goquery.Document) string { return d.Find(".entry-title").Text() },
	func(d *goquery.Document) string { return d.Find(".post-title").Text() },
}

// TitleExtractor picks a page title from headings and metadata.
type TitleExtractor struct{}

// NewTitleExtractor creates a new TitleExtractor.
func NewTitleExtractor() *TitleExtractor {
	return &TitleExtractor{}
}

// ExtractTitle returns the first candidate longer than five characters after
// trimming, or kbscrape.UntitledTitle.
func (e *TitleExtractor) ExtractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return kbscrape.UntitledTitle
	}

	for _, candidate := range titleCandidates {
		title := strings.TrimSpace(candidate(doc))
		if utf8.RuneCountInString(title) > minTitleLength {
			return title
		}
	}
	return kbscrape.UntitledTitle
}
