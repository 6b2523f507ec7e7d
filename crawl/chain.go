package crawl

import (
	"unicode/utf8"

	"github.com/fwojciec/kbscrape"
)

// Strategy is one tier of content extraction.
type Strategy struct {
	Name   string
	Blocks kbscrape.BlockFinder

	// MinLength is the markdown length, in characters, a block must reach
	// for the strategy to win. Zero accepts any non-empty block.
	MinLength int
}

// ContentChain tries extraction strategies in order and returns the first
// block that converts to long enough markdown.
type ContentChain struct {
	Converter  kbscrape.Converter
	Strategies []Strategy
}

// NewContentChain builds the standard three-tier chain: a readability-style
// extractor, semantic selectors, and the largest text block as a last resort.
func NewContentChain(conv kbscrape.Converter, primary, selectors, largest kbscrape.BlockFinder) *ContentChain {
	return &ContentChain{
		Converter: conv,
		Strategies: []Strategy{
			{Name: "primary", Blocks: primary, MinLength: kbscrape.MinContentLength},
			{Name: "selectors", Blocks: selectors, MinLength: kbscrape.MinContentLength},
			{Name: "largest", Blocks: largest},
		},
	}
}

// Extract returns normalized markdown for the main content of html, or ""
// when no strategy produced a qualifying block.
func (c *ContentChain) Extract(html string) string {
	for _, s := range c.Strategies {
		if md := c.try(s, html); md != "" {
			return md
		}
	}
	return ""
}

func (c *ContentChain) try(s Strategy, html string) string {
	if s.Blocks == nil {
		return ""
	}
	blocks, err := s.Blocks.FindBlocks(html)
	if err != nil {
		return ""
	}
	for _, block := range blocks {
		md, err := c.Converter.Convert(block)
		if err != nil {
			continue
		}
		md = kbscrape.NormalizeMarkdown(md)
		if md == "" {
			continue
		}
		if utf8.RuneCountInString(md) >= s.MinLength {
			return md
		}
	}
	return ""
}
