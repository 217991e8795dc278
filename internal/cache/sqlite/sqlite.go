// Package sqlite mirrors the profile into a local SQLite file, the default
// cache backend for a single-user client.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/matchbook-app/matchbook-client/internal/cache"
	"github.com/matchbook-app/matchbook-client/internal/domain"
)

// cacheKey is the fixed key of the single cache entry.
const cacheKey = "current"

const schema = `
CREATE TABLE IF NOT EXISTS profile_cache (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

type sqliteCache struct {
	db *sqlx.DB
}

// New opens (creating if needed) the cache database at path.
func New(path string) (cache.Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// A single writer is the whole point of this cache.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return &sqliteCache{db: db}, nil
}

func (c *sqliteCache) Load(ctx context.Context) (*domain.Profile, error) {
	var payload []byte
	query := `SELECT payload FROM profile_cache WHERE key = ?`
	err := c.db.GetContext(ctx, &payload, query, cacheKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var profile domain.Profile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return &profile, nil
}

func (c *sqliteCache) Save(ctx context.Context, profile *domain.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	query := `
		INSERT INTO profile_cache (key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`
	if _, err := c.db.ExecContext(ctx, query, cacheKey, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (c *sqliteCache) Delete(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM profile_cache WHERE key = ?`, cacheKey); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

func (c *sqliteCache) Close() error {
	return c.db.Close()
}
