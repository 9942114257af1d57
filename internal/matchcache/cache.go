// Package matchcache persists resolved title-to-path matches in
// SQLite. Entries are keyed both by session identifier and by
// normalized title; a stale path is evicted on read. Single-writer by
// contract: only the synchronization loop mutates the cache.
package matchcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/xenon-nito/Plex-Taiga-Sync/internal/resolver"
)

// Key prefixes. Two keys may point at the same value; both are written
// on every successful resolution.
const (
	KeyPrefixID    = "id:"
	KeyPrefixTitle = "title:"
)

// IDKey builds the cache key for a session identifier. Empty when the
// identifier is empty.
func IDKey(guid string) string {
	if guid == "" {
		return ""
	}
	return KeyPrefixID + guid
}

// TitleKey builds the cache key for a normalized title.
func TitleKey(normalized string) string {
	if normalized == "" {
		return ""
	}
	return KeyPrefixTitle + normalized
}

// Entry is a cached match: the resolved local path (may be empty while
// only metadata is known) and the optional metadata record.
type Entry struct {
	Key    string           `json:"-"`
	Path   string           `json:"path"`
	Record *resolver.Record `json:"record,omitempty"`
}

// ProviderID returns the metadata provider id, 0 when unknown.
func (e Entry) ProviderID() int {
	if e.Record == nil {
		return 0
	}
	return e.Record.ID
}

// Cache is the SQLite-backed match cache. Every mutation is persisted
// synchronously; correctness over throughput, writes are rare.
type Cache struct {
	db  *sql.DB
	log *slog.Logger
}

// New creates a match cache over an open database.
func New(db *sql.DB, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{db: db, log: log.With("component", "matchcache")}
}

// Lookup returns the entry under key. A non-empty path that no longer
// exists on disk evicts the entry and reports a miss.
func (c *Cache) Lookup(ctx context.Context, key string) (Entry, bool) {
	if key == "" {
		return Entry{}, false
	}

	var path, metadata string
	var providerID int
	err := c.db.QueryRowContext(ctx,
		"SELECT path, provider_id, metadata FROM match_cache WHERE key = ?", key,
	).Scan(&path, &providerID, &metadata)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false
	}
	if err != nil {
		c.log.Warn("cache read failed", "key", key, "error", err)
		return Entry{}, false
	}

	entry := Entry{Key: key, Path: path}
	if metadata != "" {
		var rec resolver.Record
		if err := json.Unmarshal([]byte(metadata), &rec); err != nil {
			c.log.Warn("cache entry has malformed metadata", "key", key, "error", err)
		} else {
			entry.Record = &rec
		}
	}

	if entry.Path != "" {
		if _, err := os.Stat(entry.Path); err != nil {
			c.log.Info("cached path no longer exists, evicting", "key", key, "path", entry.Path)
			if err := c.Evict(ctx, key); err != nil {
				c.log.Warn("evict failed", "key", key, "error", err)
			}
			return Entry{}, false
		}
	}

	return entry, true
}

// Store upserts the entry under every non-empty key. Best-effort
// across keys: each write is attempted, failures are logged and the
// first error is returned.
func (c *Cache) Store(ctx context.Context, keys []string, entry Entry) error {
	metadata := ""
	if entry.Record != nil {
		data, err := json.Marshal(entry.Record)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
		metadata = string(data)
	}

	var firstErr error
	for _, key := range keys {
		if key == "" {
			continue
		}
		_, err := c.db.ExecContext(ctx,
			`INSERT INTO match_cache (key, path, provider_id, metadata, updated_at)
			 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(key) DO UPDATE SET
			   path = excluded.path,
			   provider_id = excluded.provider_id,
			   metadata = excluded.metadata,
			   updated_at = excluded.updated_at`,
			key, entry.Path, entry.ProviderID(), metadata,
		)
		if err != nil {
			c.log.Warn("cache write failed", "key", key, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("cache store %q: %w", key, err)
			}
		}
	}
	return firstErr
}

// Evict removes the entry under key.
func (c *Cache) Evict(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM match_cache WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("cache evict: %w", err)
	}
	return nil
}

// List returns all entries, for inspection from the CLI.
func (c *Cache) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT key, path, metadata FROM match_cache ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("cache list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var key, path, metadata string
		if err := rows.Scan(&key, &path, &metadata); err != nil {
			return nil, fmt.Errorf("cache list scan: %w", err)
		}
		entry := Entry{Key: key, Path: path}
		if metadata != "" {
			var rec resolver.Record
			if err := json.Unmarshal([]byte(metadata), &rec); err == nil {
				entry.Record = &rec
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
