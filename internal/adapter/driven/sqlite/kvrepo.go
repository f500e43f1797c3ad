package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.KVStore = (*KVRepo)(nil)

// KVRepo is the SQLite implementation of the KVStore port interface.
type KVRepo struct {
	db  *DB
	now func() time.Time
}

// NewKVRepo creates a new KVRepo backed by the given DB.
func NewKVRepo(db *DB) *KVRepo {
	return &KVRepo{db: db, now: time.Now}
}

// Get returns the value stored under key. found is false if the key has
// never been written.
func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const query = `SELECT value FROM cache_entries WHERE key = ?`

	var value []byte
	err := r.db.Reader.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cache entry %s: %w", key, err)
	}

	return value, true, nil
}

// Set inserts or replaces the value stored under key.
func (r *KVRepo) Set(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT INTO cache_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`

	if value == nil {
		value = []byte{}
	}

	if _, err := r.db.Writer.ExecContext(ctx, query, key, value, r.now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("set cache entry %s: %w", key, err)
	}

	return nil
}
