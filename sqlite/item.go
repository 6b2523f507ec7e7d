package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/kbscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ kbscrape.ItemService = (*ItemService)(nil)

// ItemService implements kbscrape.ItemService using SQLite.
type ItemService struct {
	db *DB
}

// NewItemService creates a new ItemService.
func NewItemService(db *DB) *ItemService {
	return &ItemService{db: db}
}

const itemColumns = "id, site, source_url, title, content, content_type, content_hash, scraped_at"

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateItem stores a new item.
func (s *ItemService) CreateItem(ctx context.Context, item *kbscrape.StoredItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return insertItem(ctx, s.db, item, time.Now().UTC())
}

// ReplaceSiteItems deletes the site's items and stores items in their place
// within one transaction. Nothing changes if any item is invalid or any
// write fails.
func (s *ItemService) ReplaceSiteItems(ctx context.Context, site string, items []*kbscrape.StoredItem) error {
	for _, item := range items {
		item.Site = site
		if err := item.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return kbscrape.Errorf(kbscrape.EINTERNAL, "begin transaction: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE site = ?", site); err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, item := range items {
		if err := insertItem(ctx, tx, item, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertItem(ctx context.Context, db execer, item *kbscrape.StoredItem, now time.Time) error {
	item.ID = uuid.New().String()
	item.ScrapedAt = now
	item.ContentHash = hashContent(item.Content)

	_, err := db.ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.Site, item.SourceURL, item.Title, item.Content, string(item.ContentType),
		item.ContentHash, item.ScrapedAt.Format(time.RFC3339Nano))
	return err
}

// FindItemByID retrieves an item by ID.
func (s *ItemService) FindItemByID(ctx context.Context, id string) (*kbscrape.StoredItem, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM items WHERE id = ?", id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kbscrape.Errorf(kbscrape.ENOTFOUND, "item not found")
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// FindItems retrieves items matching the filter, newest first.
func (s *ItemService) FindItems(ctx context.Context, filter kbscrape.ItemFilter) ([]*kbscrape.StoredItem, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + itemColumns + " FROM items WHERE 1=1")

	if filter.Site != nil {
		query.WriteString(" AND site = ?")
		args = append(args, *filter.Site)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.ContentType != nil {
		query.WriteString(" AND content_type = ?")
		args = append(args, string(*filter.ContentType))
	}

	query.WriteString(" ORDER BY scraped_at DESC, source_url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*kbscrape.StoredItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// DeleteItemsBySite removes all items scraped from a site.
func (s *ItemService) DeleteItemsBySite(ctx context.Context, site string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE site = ?", site)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*kbscrape.StoredItem, error) {
	var item kbscrape.StoredItem
	var contentType, scrapedAt string

	if err := row.Scan(&item.ID, &item.Site, &item.SourceURL, &item.Title, &item.Content,
		&contentType, &item.ContentHash, &scrapedAt); err != nil {
		return nil, err
	}

	item.ContentType = kbscrape.ContentType(contentType)

	var err error
	item.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at")
	if err != nil {
		return nil, err
	}

	return &item, nil
}
