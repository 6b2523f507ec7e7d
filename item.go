package kbscrape

import (
	"context"
	"time"
)

// StoredItem is a ContentItem persisted by an ItemService.
type StoredItem struct {
	ContentItem

	ID          string    `json:"id"`
	Site        string    `json:"site"`
	ContentHash string    `json:"content_hash"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// Validate returns an error if the stored item contains invalid fields.
func (i *StoredItem) Validate() error {
	if i.Site == "" {
		return Errorf(EINVALID, "item site required")
	}
	return i.ContentItem.Validate()
}

// ItemService represents a service for managing scraped items.
type ItemService interface {
	// CreateItem stores a new item, assigning its ID, hash and timestamp.
	CreateItem(ctx context.Context, item *StoredItem) error

	// FindItemByID retrieves an item by ID.
	// Returns ENOTFOUND if the item does not exist.
	FindItemByID(ctx context.Context, id string) (*StoredItem, error)

	// FindItems retrieves items matching the filter, newest first.
	FindItems(ctx context.Context, filter ItemFilter) ([]*StoredItem, error)

	// DeleteItemsBySite removes all items scraped from a site.
	DeleteItemsBySite(ctx context.Context, site string) error

	// ReplaceSiteItems atomically swaps the site's items for items.
	// On error the previously stored items are left untouched.
	ReplaceSiteItems(ctx context.Context, site string, items []*StoredItem) error
}

// ItemFilter represents a filter for FindItems.
type ItemFilter struct {
	Site        *string      `json:"site"`
	SourceURL   *string      `json:"source_url"`
	ContentType *ContentType `json:"content_type"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
