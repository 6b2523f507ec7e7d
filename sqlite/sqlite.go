// Package sqlite stores scraped knowledge-base items in SQLite.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/kbscrape"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id           TEXT PRIMARY KEY,
	site         TEXT NOT NULL,
	source_url   TEXT NOT NULL,
	title        TEXT NOT NULL,
	content      TEXT NOT NULL,
	content_type TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	scraped_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_site ON items(site);
CREATE INDEX IF NOT EXISTS idx_items_content_type ON items(content_type);
`

// DB is an item database at a file path.
type DB struct {
	db   *sql.DB
	path string
}

func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects, applies pragmas and migrates the schema.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return kbscrape.Errorf(kbscrape.EINTERNAL, "open database %s: %v", db.path, err)
	}
	// One writer at a time.
	conn.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return kbscrape.Errorf(kbscrape.EINTERNAL, "open database %s: %v", db.path, err)
		}
	}

	db.db = conn
	if err := db.migrate(); err != nil {
		conn.Close()
		db.db = nil
		return kbscrape.Errorf(kbscrape.EINTERNAL, "migrate database %s: %v", db.path, err)
	}
	return nil
}

func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

func (db *DB) migrate() error {
	var version int
	if err := db.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version >= schemaVersion {
		return nil
	}
	if _, err := db.db.Exec(schema); err != nil {
		return err
	}
	// PRAGMA does not accept bound parameters.
	_, err := db.db.Exec("PRAGMA user_version = 1")
	return err
}
