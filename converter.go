package kbscrape

import (
	"regexp"
	"strings"
)

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// Output uses ATX headings, "-" bullets and fenced code blocks.
	Convert(html string) (string, error)
}

var (
	reExtraNewlines = regexp.MustCompile(`\n{3,}`)
	reHTMLComment   = regexp.MustCompile(`<!--[\s\S]*?-->`)
	reExtraSpaces   = regexp.MustCompile(` {2,}`)
	reEmptyLink     = regexp.MustCompile(`\[([^\]]*)\]\(\)`)
)

// NormalizeMarkdown cleans converter output: runs of three or more newlines
// collapse to two, HTML comments are removed, runs of spaces collapse to one,
// links with an empty target become their text, and the result is trimmed.
func NormalizeMarkdown(md string) string {
	md = reExtraNewlines.ReplaceAllString(md, "\n\n")
	md = reHTMLComment.ReplaceAllString(md, "")
	md = reExtraSpaces.ReplaceAllString(md, " ")
	md = reEmptyLink.ReplaceAllString(md, "$1")
	return strings.TrimSpace(md)
}
