// Package file provides a filesystem implementation of driven.SlotStore.
// Each slot is a single JSON file named after its key.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/friesencafe/statusportal/internal/core/domain"
	"github.com/friesencafe/statusportal/internal/core/ports/driven"
)

// Ensure SlotStore implements the interface.
var _ driven.SlotStore = (*SlotStore)(nil)

const slotExt = ".json"

// SlotStore keeps slots as files in a directory.
// Writes go to a temporary file that is renamed over the slot, so readers
// never observe a half-written document.
type SlotStore struct {
	mu     sync.Mutex
	dir    string
	closed bool
}

// NewSlotStore creates a file slot store rooted at dir.
// If dir is empty, defaults to ~/.friesencafe/data.
func NewSlotStore(dir string) (*SlotStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".friesencafe", "data")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &SlotStore{dir: dir}, nil
}

// Path returns the file backing key.
func (s *SlotStore) Path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: slot key %q", domain.ErrInvalidInput, key)
	}
	return filepath.Join(s.dir, key+slotExt), nil
}

// Get reads the slot file.
func (s *SlotStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.open(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrSlotUnavailable, path, err)
	}
	if len(data) == 0 {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

// Put writes value to a temp file and renames it over the slot file.
func (s *SlotStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreClosed
	}
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", domain.ErrSlotUnavailable, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: writing temp file: %w", domain.ErrSlotUnavailable, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: setting permissions: %w", domain.ErrSlotUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: closing temp file: %w", domain.ErrSlotUnavailable, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replacing %s: %w", domain.ErrSlotUnavailable, path, err)
	}
	return nil
}

// Delete removes the slot file. A missing file is not an error.
func (s *SlotStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreClosed
	}
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: removing %s: %w", domain.ErrSlotUnavailable, path, err)
	}
	return nil
}

// Location returns the data directory.
func (s *SlotStore) Location() string {
	return s.dir
}

// Close marks the store closed.
func (s *SlotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *SlotStore) open(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", domain.ErrStoreClosed
	}
	return s.Path(key)
}
