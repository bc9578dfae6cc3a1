package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store on top of a single JSON file. The whole
// map is rewritten on every mutation via an atomic rename, so a crash
// mid-write leaves the previous state intact.
//
// The Store contract is infallible, so write failures are logged and
// swallowed; the in-memory view stays authoritative for the process
// lifetime either way.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
	log    *slog.Logger
}

// NewFileStore opens (or creates) the store backed by path. A corrupt
// or unreadable file is treated as empty and logged, never surfaced:
// losing cached credentials only forces a re-login.
func NewFileStore(path string, log *slog.Logger) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("credstore: empty file path")
	}
	if log == nil {
		log = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("credstore: create directory: %w", err)
	}

	s := &FileStore{
		path:   path,
		values: make(map[string]string),
		log:    log,
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run, nothing to load.
	case err != nil:
		log.Warn("credential file unreadable, starting empty",
			slog.String("path", path), slog.Any("error", err))
	default:
		if err := json.Unmarshal(data, &s.values); err != nil {
			log.Warn("credential file corrupt, starting empty",
				slog.String("path", path), slog.Any("error", err))
			s.values = make(map[string]string)
		}
	}

	return s, nil
}

// Put stores value under key, overwriting any previous value.
func (s *FileStore) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	s.persist()
}

// Get returns the value stored under key and whether it was present.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// Remove deletes the value stored under key, if any.
func (s *FileStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	s.persist()
}

// Clear removes all stored values.
func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.values)
	s.persist()
}

// persist writes the current map to disk. Caller holds the write lock.
func (s *FileStore) persist() {
	data, err := json.Marshal(s.values)
	if err != nil {
		s.log.LogAttrs(context.Background(), slog.LevelError,
			"marshal credential file", slog.Any("error", err))
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		s.log.LogAttrs(context.Background(), slog.LevelError,
			"write credential file", slog.String("path", tmp), slog.Any("error", err))
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.log.LogAttrs(context.Background(), slog.LevelError,
			"replace credential file", slog.String("path", s.path), slog.Any("error", err))
	}
}
