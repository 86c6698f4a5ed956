package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Store is a JSON-file collection store: one file per collection under the
// data directory. Every mutation is a full-collection read-modify-write, so
// a single lock serializes all writers; lost updates are impossible as long
// as every mutation goes through the same Store instance.
type Store struct {
	dir    string
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewStore ensures the data directory exists and returns a store handle.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if dir == "" {
		dir = "./data"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// read decodes a collection file into out. A missing file is created lazily
// and treated as empty; an unreadable or corrupt file is treated as empty
// rather than failing the operation.
func (s *Store) read(collection string, out interface{}) error {
	path := s.path(collection)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := os.WriteFile(path, []byte("[]"), 0o644); writeErr != nil {
			return fmt.Errorf("create collection %s: %w", collection, writeErr)
		}
		return nil
	}
	if err != nil {
		s.logger.Warn("collection unreadable, treating as empty",
			zap.String("collection", collection), zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("collection corrupt, treating as empty",
			zap.String("collection", collection), zap.Error(err))
		return nil
	}
	return nil
}

// write atomically replaces the collection file via a temp file rename.
func (s *Store) write(collection string, records interface{}) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}

	path := s.path(collection)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace collection %s: %w", collection, err)
	}
	return nil
}

// Load reads a collection under the read lock.
func (s *Store) Load(collection string, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(collection, out)
}

// Save overwrites a collection under the write lock.
func (s *Store) Save(collection string, records interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(collection, records)
}

// LoadConfig reads a singleton config document. Any read or parse failure
// leaves out untouched so callers fall back to their defaults; absent
// configuration must never block legitimate use.
func (s *Store) LoadConfig(name string, out interface{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil || len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("config unreadable, using defaults",
			zap.String("config", name), zap.Error(err))
	}
}

// SaveConfig overwrites a singleton config document.
func (s *Store) SaveConfig(name string, doc interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(name, doc)
}

// mutate holds the write lock across a full read-modify-write cycle.
func (s *Store) mutate(collection string, out interface{}, apply func() (interface{}, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.read(collection, out); err != nil {
		return err
	}
	records, err := apply()
	if err != nil {
		return err
	}
	return s.write(collection, records)
}
