package kbscrape

// TitleExtractor picks the page title from raw HTML.
type TitleExtractor interface {
	// ExtractTitle returns the first title candidate longer than five
	// characters, or "Untitled" when none qualifies.
	ExtractTitle(html string) string
}

// UntitledTitle is the title used when no candidate qualifies.
const UntitledTitle = "Untitled"

// BlockFinder locates candidate main-content blocks in a page.
type BlockFinder interface {
	// FindBlocks returns the inner HTML of each candidate block, best
	// candidate first. An empty result means no candidate was found.
	FindBlocks(html string) ([]string, error)
}
