package mock

import (
	"context"

	"github.com/fwojciec/kbscrape"
)

var (
	_ kbscrape.PageExtractor = (*PageExtractor)(nil)
	_ kbscrape.Classifier    = (*Classifier)(nil)
	_ kbscrape.PageStore     = (*PageStore)(nil)
	_ kbscrape.ItemService   = (*ItemService)(nil)
)

// PageExtractor is a mock implementation of kbscrape.PageExtractor.
type PageExtractor struct {
	ExtractPageFn func(ctx context.Context, url string) (*kbscrape.Page, error)
}

func (e *PageExtractor) ExtractPage(ctx context.Context, url string) (*kbscrape.Page, error) {
	return e.ExtractPageFn(ctx, url)
}

// Classifier is a mock implementation of kbscrape.Classifier.
type Classifier struct {
	ClassifyFn func(url, content string) kbscrape.ContentType
}

func (c *Classifier) Classify(url, content string) kbscrape.ContentType {
	return c.ClassifyFn(url, content)
}

// PageStore is a mock implementation of kbscrape.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, item *kbscrape.ContentItem) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, item *kbscrape.ContentItem) error {
	return s.SaveFn(ctx, item)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}

// ItemService is a mock implementation of kbscrape.ItemService.
type ItemService struct {
	CreateItemFn        func(ctx context.Context, item *kbscrape.StoredItem) error
	FindItemByIDFn      func(ctx context.Context, id string) (*kbscrape.StoredItem, error)
	FindItemsFn         func(ctx context.Context, filter kbscrape.ItemFilter) ([]*kbscrape.StoredItem, error)
	DeleteItemsBySiteFn func(ctx context.Context, site string) error
	ReplaceSiteItemsFn  func(ctx context.Context, site string, items []*kbscrape.StoredItem) error
}

func (s *ItemService) CreateItem(ctx context.Context, item *kbscrape.StoredItem) error {
	return s.CreateItemFn(ctx, item)
}

func (s *ItemService) FindItemByID(ctx context.Context, id string) (*kbscrape.StoredItem, error) {
	return s.FindItemByIDFn(ctx, id)
}

func (s *ItemService) FindItems(ctx context.Context, filter kbscrape.ItemFilter) ([]*kbscrape.StoredItem, error) {
	return s.FindItemsFn(ctx, filter)
}

func (s *ItemService) DeleteItemsBySite(ctx context.Context, site string) error {
	return s.DeleteItemsBySiteFn(ctx, site)
}

func (s *ItemService) ReplaceSiteItems(ctx context.Context, site string, items []*kbscrape.StoredItem) error {
	return s.ReplaceSiteItemsFn(ctx, site, items)
}
