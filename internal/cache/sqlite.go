// Package cache is the durable on-device mirror of the envelope. It is the
// authoritative source when the network is down and the optimistic
// write-ahead copy before a remote sync completes.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cloudnav/cloudnav/internal/domain"
	"github.com/cloudnav/cloudnav/internal/logger"
)

// cacheKey is the single fixed key the serialized envelope lives under.
const cacheKey = "app_data"

const schema = `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
`

type Cache struct {
	db     *sql.DB
	logger logger.Logger
}

// Open creates or opens the cache database at path.
func Open(path string, log logger.Logger) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Cache{db: db, logger: log}, nil
}

// Load reads the mirrored envelope. A missing row and corrupt content are
// treated identically: (zero, false), silently. The caller falls back to
// built-in defaults; no error ever reaches the user from here.
func (c *Cache) Load() (domain.Envelope, bool) {
	var raw string
	err := c.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, cacheKey).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			c.logger.Debug("cache read failed, falling back", logger.Error(err))
		}
		return domain.Envelope{}, false
	}

	var env domain.Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		c.logger.Debug("cache content unparsable, falling back", logger.Error(err))
		return domain.Envelope{}, false
	}
	return env, true
}

// Save mirrors the envelope. Called synchronously on every accepted
// mutation, before any remote sync is attempted.
func (c *Cache) Save(env domain.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope for cache: %w", err)
	}

	if _, err := c.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		cacheKey, string(data),
	); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
