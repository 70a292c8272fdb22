// Package cas stores the fingerprint of the last successful bundle per project.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/fusionary/internal/core/domain"
)

// Store implements ports.BuildStateStore using a JSON file under .fusionary.
type Store struct {
	mu sync.RWMutex
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Path returns the state file of the project rooted at root.
func Path(root string) string {
	return filepath.Join(root, domain.DefaultStatePath())
}

// Get returns the stored state, or nil when nothing was stored yet.
func (s *Store) Get(root string) (*domain.BuildState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := Path(root)
	//nolint:gosec // path is derived from the discovered project root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.Because(domain.ErrStoreReadFailed, err, "path", path)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var state domain.BuildState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, domain.Because(domain.ErrStoreReadFailed, err, "path", path)
	}
	return &state, nil
}

// Put writes the state, replacing the previous file atomically.
func (s *Store) Put(root string, state domain.BuildState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := Path(root)
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return domain.Because(domain.ErrStoreWriteFailed, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return domain.Because(domain.ErrStoreWriteFailed, err, "path", dir)
	}

	tmp, err := os.CreateTemp(dir, domain.StateFileName+".*")
	if err != nil {
		return domain.Because(domain.ErrStoreWriteFailed, err, "path", dir)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(append(data, '\n'))
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return domain.Because(domain.ErrStoreWriteFailed, err, "path", tmpName)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return domain.Because(domain.ErrStoreWriteFailed, err, "path", path)
	}
	return nil
}
