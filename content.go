package kbscrape

import (
	"unicode/utf8"
)

// ContentType is the label assigned to an extracted page.
type ContentType string

// Content type labels.
const (
	ContentTypeBlog              ContentType = "blog"
	ContentTypeBook              ContentType = "book"
	ContentTypePodcastTranscript ContentType = "podcast_transcript"
	ContentTypeCallTranscript    ContentType = "call_transcript"
	ContentTypeLinkedInPost      ContentType = "linkedin_post"
	ContentTypeRedditComment     ContentType = "reddit_comment"
	ContentTypeOther             ContentType = "other"
)

// ContentTypes lists every label in a stable order.
var ContentTypes = []ContentType{
	ContentTypeBlog,
	ContentTypeBook,
	ContentTypePodcastTranscript,
	ContentTypeCallTranscript,
	ContentTypeLinkedInPost,
	ContentTypeRedditComment,
	ContentTypeOther,
}

// Classifier assigns a content type to a page.
type Classifier interface {
	// Classify is pure: the same inputs always give the same label.
	Classify(url, content string) ContentType
}

// ContentItem is one entry in the knowledge base.
type ContentItem struct {
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	SourceURL   string      `json:"source_url"`
}

// Validate returns an error if the item would not qualify as content.
func (i *ContentItem) Validate() error {
	if i.Title == "" {
		return Errorf(EINVALID, "item title required")
	}
	if i.SourceURL == "" {
		return Errorf(EINVALID, "item source URL required")
	}
	if utf8.RuneCountInString(i.Content) < MinContentLength {
		return Errorf(EINVALID, "item content shorter than %d characters", MinContentLength)
	}
	return nil
}

// Stats summarizes a scrape result.
type Stats struct {
	TotalItems   int                 `json:"total_items"`
	ContentTypes map[ContentType]int `json:"content_types"`
}

// NewStats counts items per content type.
func NewStats(items []*ContentItem) Stats {
	s := Stats{
		TotalItems:   len(items),
		ContentTypes: make(map[ContentType]int),
	}
	for _, item := range items {
		s.ContentTypes[item.ContentType]++
	}
	return s
}

// ScrapeResult is the outcome of scraping one website.
type ScrapeResult struct {
	Site  string         `json:"site"`
	Items []*ContentItem `json:"items"`
	Error string         `json:"error,omitempty"`
	Stats Stats          `json:"stats"`
}
