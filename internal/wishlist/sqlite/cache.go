// Package sqlite persists the wishlist cache in a local SQLite database.
// The cache is write-through device-local state; the server stays the
// source of truth.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bookcourier/bookcourier/internal/domain"
)

// namespace partitions rows so unrelated caches can share the database file.
const namespace = "bookcourier-wishlist"

// Cache stores wishlist items in SQLite. Implements wishlist.Cache.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path and applies the schema.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS wishlist_items (
		namespace  TEXT NOT NULL,
		book_id    TEXT NOT NULL,
		book_name  TEXT NOT NULL,
		author     TEXT NOT NULL DEFAULT '',
		image      TEXT NOT NULL DEFAULT '',
		price      REAL NOT NULL DEFAULT 0,
		added_at   TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (namespace, book_id)
	);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Load returns all cached wishlist items.
func (c *Cache) Load() ([]domain.WishlistItem, error) {
	rows, err := c.db.Query(
		`SELECT book_id, book_name, author, image, price, added_at
		 FROM wishlist_items WHERE namespace=? ORDER BY added_at, book_id`, namespace)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.WishlistItem
	for rows.Next() {
		var item domain.WishlistItem
		var addedAt string
		if err := rows.Scan(&item.BookID, &item.BookName, &item.Author, &item.Image, &item.Price, &addedAt); err != nil {
			return nil, err
		}
		if addedAt != "" {
			if t, err := time.Parse(time.RFC3339Nano, addedAt); err == nil {
				item.AddedAt = t
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Save replaces the cached items wholesale inside one transaction, so a
// crash mid-write never leaves a mix of old and new state.
func (c *Cache) Save(items []domain.WishlistItem) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM wishlist_items WHERE namespace=?`, namespace); err != nil {
		return err
	}
	for _, item := range items {
		addedAt := ""
		if !item.AddedAt.IsZero() {
			addedAt = item.AddedAt.UTC().Format(time.RFC3339Nano)
		}
		if _, err := tx.Exec(
			`INSERT INTO wishlist_items(namespace, book_id, book_name, author, image, price, added_at)
			 VALUES(?,?,?,?,?,?,?)`,
			namespace, item.BookID, item.BookName, item.Author, item.Image, item.Price, addedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Clear removes all cached items.
func (c *Cache) Clear() error {
	_, err := c.db.Exec(`DELETE FROM wishlist_items WHERE namespace=?`, namespace)
	return err
}
