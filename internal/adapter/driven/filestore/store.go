// Package filestore implements the KVStore port as a single JSON document on
// disk. It suits static builds and hosts where a database file is unwanted.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.KVStore = (*Store)(nil)

// ErrNotJSON is returned by Set when the value is not a JSON document.
var ErrNotJSON = errors.New("value is not valid JSON")

// Store keeps every entry in one JSON object keyed by entry key. Each write
// rewrites the whole file atomically.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a Store backed by path. The file is created on first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key. A missing file is an empty store.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, false, err
	}

	value, ok := entries[key]
	if !ok {
		return nil, false, nil
	}

	return []byte(value), true, nil
}

// Set stores value under key, replacing any previous value. A file that can no
// longer be decoded is replaced rather than merged.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("set %s: %w", key, ErrNotJSON)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) {
			return err
		}
		entries = make(map[string]json.RawMessage)
	}

	entries[key] = json.RawMessage(bytes.Clone(value))

	return s.save(entries)
}

func (s *Store) load() (map[string]json.RawMessage, error) {
	entries := make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return entries, nil
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}

	return entries, nil
}

// save writes entries under the parent directory through a unique temp file
// that is synced and renamed over the final path.
func (s *Store) save(entries map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", s.path, err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	return nil
}
