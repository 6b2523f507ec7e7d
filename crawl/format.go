package crawl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/kbscrape"
)

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// Preview returns the first n characters of content on one line, with an
// ellipsis when content was cut.
func Preview(content string, n int) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)
	if len(runes) <= n {
		return flat
	}
	return string(runes[:n]) + "..."
}

// TypeCount is one row of a content type summary.
type TypeCount struct {
	Type  kbscrape.ContentType
	Count int
}

// SummarizeTypes orders the stats' content type counts by count descending,
// then by name.
func SummarizeTypes(stats kbscrape.Stats) []TypeCount {
	rows := make([]TypeCount, 0, len(stats.ContentTypes))
	for t, n := range stats.ContentTypes {
		rows = append(rows, TypeCount{Type: t, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Type < rows[j].Type
	})
	return rows
}
