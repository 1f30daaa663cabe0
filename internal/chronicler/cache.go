package chronicler

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Cache is a read-through store for archive response bodies, keyed by
// request URL. Only pages the caller knows to be immutable (finished games)
// belong here; deleting the database is always safe.
type Cache struct {
	conn *sql.DB
}

// OpenCache opens (or creates) the page cache at the given path and applies
// the schema.
func OpenCache(path string) (*Cache, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}
	return &Cache{conn: conn}, nil
}

// Close closes the underlying connection.
func (c *Cache) Close() error {
	return c.conn.Close()
}

// Get returns the cached body for a URL, if present.
func (c *Cache) Get(url string) ([]byte, bool) {
	var body []byte
	err := c.conn.QueryRow("SELECT body FROM pages WHERE url = ?", url).Scan(&body)
	if err != nil {
		return nil, false
	}
	return body, true
}

// Put stores the body for a URL. Uses INSERT OR REPLACE for idempotency.
func (c *Cache) Put(url string, body []byte) error {
	_, err := c.conn.Exec(
		"INSERT OR REPLACE INTO pages(url, fetched_at, body) VALUES (?, ?, ?)",
		url, time.Now().UTC().Format(time.RFC3339), body,
	)
	return err
}
