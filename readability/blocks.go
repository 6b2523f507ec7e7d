// Package readability finds the main article block with
// go-shiori/go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/kbscrape"
	"github.com/go-shiori/go-readability"
)

var _ kbscrape.BlockFinder = (*BlockFinder)(nil)

// BlockFinder is the first tier of the content chain.
type BlockFinder struct{}

func NewBlockFinder() *BlockFinder {
	return &BlockFinder{}
}

// FindBlocks returns the readability article as the only candidate, or no
// candidates when readability finds nothing readable.
func (f *BlockFinder) FindBlocks(rawHTML string) ([]string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINTERNAL, "readability: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, nil
	}
	return []string{article.Content}, nil
}
