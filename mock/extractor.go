package mock

import "github.com/fwojciec/kbscrape"

var (
	_ kbscrape.BlockFinder    = (*BlockFinder)(nil)
	_ kbscrape.TitleExtractor = (*TitleExtractor)(nil)
	_ kbscrape.Converter      = (*Converter)(nil)
)

// BlockFinder is a mock implementation of kbscrape.BlockFinder.
type BlockFinder struct {
	FindBlocksFn func(html string) ([]string, error)
}

func (f *BlockFinder) FindBlocks(html string) ([]string, error) {
	return f.FindBlocksFn(html)
}

// TitleExtractor is a mock implementation of kbscrape.TitleExtractor.
type TitleExtractor struct {
	ExtractTitleFn func(html string) string
}

func (e *TitleExtractor) ExtractTitle(html string) string {
	return e.ExtractTitleFn(html)
}

// Converter is a mock implementation of kbscrape.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
