package kbscrape

// LinkSelector extracts outgoing links from HTML.
type LinkSelector interface {
	// ExtractLinks returns every anchor href in the document resolved
	// against pageURL, with fragments and query strings stripped and
	// non-HTTP schemes dropped. Order follows the document.
	ExtractLinks(html string, pageURL string) ([]string, error)
}
