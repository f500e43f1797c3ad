package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ericfisherdev/devfolio/internal/domain/model"
	"github.com/ericfisherdev/devfolio/internal/domain/port/driven"
)

const (
	// SchemaVersion identifies the snapshot layout. Bump it whenever the
	// cached JSON shape changes so stale layouts are ignored.
	SchemaVersion = "v5"

	// DefaultCacheTTL is how long a snapshot is served without refetching.
	DefaultCacheTTL = 24 * time.Hour

	cacheKeyPrefix = "githubData_"
)

// CacheStore reads and writes portfolio snapshots in a KVStore. Every failure
// is wrapped in a *model.StoreError, logged, and treated as a cache miss or a
// skipped write. CacheStore never returns errors to its callers.
type CacheStore struct {
	kv      driven.KVStore
	version string
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// NewCacheStore creates a CacheStore. A nil now defaults to time.Now and a
// non-positive ttl defaults to DefaultCacheTTL.
func NewCacheStore(kv driven.KVStore, version string, ttl time.Duration, now func() time.Time, logger *slog.Logger) *CacheStore {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CacheStore{
		kv:      kv,
		version: version,
		ttl:     ttl,
		now:     now,
		logger:  logger,
	}
}

// Key returns the store key for a username.
func Key(username string) string {
	return cacheKeyPrefix + username
}

// Read returns the snapshot stored for username. The second return value is
// false when nothing is stored, the value cannot be decoded, or its schema
// version differs from the store's version.
func (c *CacheStore) Read(ctx context.Context, username string) (*model.Snapshot, bool) {
	key := Key(username)

	raw, found, err := c.kv.Get(ctx, key)
	if err != nil {
		c.logStoreError(&model.StoreError{Op: "read", Key: key, Err: err})
		return nil, false
	}
	if !found || len(raw) == 0 {
		return nil, false
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		c.logStoreError(&model.StoreError{Op: "decode", Key: key, Err: err})
		return nil, false
	}

	if snapshot.SchemaVersion != c.version {
		c.logger.Debug("ignoring cached snapshot with other schema version",
			"key", key,
			"version", snapshot.SchemaVersion,
			"want", c.version,
		)
		return nil, false
	}

	if snapshot.Repos == nil {
		snapshot.Repos = []model.RepositoryEntry{}
	}

	return &snapshot, true
}

// Write stores a new snapshot for username stamped with the current time.
// A rejected write is logged and otherwise ignored.
func (c *CacheStore) Write(ctx context.Context, username string, profile model.Profile, repos []model.RepositoryEntry) {
	key := Key(username)

	snapshot := model.Snapshot{
		Profile:       profile,
		Repos:         repos,
		Timestamp:     c.now().UnixMilli(),
		SchemaVersion: c.version,
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		c.logStoreError(&model.StoreError{Op: "encode", Key: key, Err: err})
		return
	}

	if err := c.kv.Set(ctx, key, data); err != nil {
		c.logStoreError(&model.StoreError{Op: "write", Key: key, Err: err})
		return
	}

	c.logger.Debug("snapshot cached", "key", key, "repos", len(repos), "bytes", len(data))
}

// IsFresh reports whether the snapshot is younger than the TTL.
func (c *CacheStore) IsFresh(snapshot *model.Snapshot) bool {
	if snapshot == nil {
		return false
	}
	return c.now().UnixMilli()-snapshot.Timestamp < c.ttl.Milliseconds()
}

func (c *CacheStore) logStoreError(err *model.StoreError) {
	c.logger.Warn("cache store error", "op", err.Op, "key", err.Key, "error", err.Err)
}
