// Package trafilatura finds the main content block with
// markusmobius/go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/kbscrape"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ kbscrape.BlockFinder = (*BlockFinder)(nil)

// BlockFinder is the alternative first tier of the content chain.
type BlockFinder struct {
	opts trafilatura.Options
}

func NewBlockFinder() *BlockFinder {
	return &BlockFinder{opts: trafilatura.Options{EnableFallback: true}}
}

// FindBlocks returns the extracted main content node as the only candidate.
func (f *BlockFinder) FindBlocks(rawHTML string) ([]string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), f.opts)
	if err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINTERNAL, "trafilatura: %v", err)
	}
	if result.ContentNode == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINTERNAL, "render content node: %v", err)
	}
	if strings.TrimSpace(buf.String()) == "" {
		return nil, nil
	}
	return []string{buf.String()}, nil
}
