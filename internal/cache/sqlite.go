package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteCache implements persistent caching in a single SQLite file. It is
// the backend of choice for long-lived deployments where a single database
// file beats a directory of entry files.
type SQLiteCache struct {
	db *sql.DB
}

const sqliteSchema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

CREATE TABLE IF NOT EXISTS entries (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER,
	updated_at INTEGER NOT NULL
);
`

// NewSQLiteCache opens (and if needed initializes) the database at path.
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

// Get retrieves a value. An expired row is treated as a miss and removed.
func (c *SQLiteCache) Get(key string) ([]byte, bool) {
	var value []byte
	var expires sql.NullInt64

	err := c.db.QueryRow(
		`SELECT value, expires_at FROM entries WHERE key = ?`, key,
	).Scan(&value, &expires)
	if err != nil {
		return nil, false
	}

	if expires.Valid && time.Now().Unix() > expires.Int64 {
		_, _ = c.db.Exec(`DELETE FROM entries WHERE key = ?`, key)
		return nil, false
	}

	return value, true
}

// Set stores a value, replacing any prior row for the key whole. A ttl of 0
// stores a permanent row.
func (c *SQLiteCache) Set(key string, value []byte, ttl time.Duration) error {
	var expires interface{}
	if ttl > 0 {
		expires = time.Now().Add(ttl).Unix()
	}

	_, err := c.db.Exec(
		`INSERT INTO entries (key, value, expires_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		key, value, expires, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write cache row: %w", err)
	}
	return nil
}

// Delete removes a value.
func (c *SQLiteCache) Delete(key string) error {
	_, err := c.db.Exec(`DELETE FROM entries WHERE key = ?`, key)
	return err
}

// Clear removes all rows.
func (c *SQLiteCache) Clear() error {
	_, err := c.db.Exec(`DELETE FROM entries`)
	return err
}

// Close closes the underlying database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
