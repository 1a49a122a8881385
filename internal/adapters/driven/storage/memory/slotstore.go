package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/friesencafe/statusportal/internal/core/domain"
	"github.com/friesencafe/statusportal/internal/core/ports/driven"
)

// Ensure SlotStore implements the interface.
var _ driven.SlotStore = (*SlotStore)(nil)

// SlotStore is an in-memory implementation of driven.SlotStore.
// Nothing survives process exit. Writes can be made to fail to exercise
// quota-exceeded style failures.
type SlotStore struct {
	mu         sync.RWMutex
	slots      map[string][]byte
	failWrites error
	failReads  error
	puts       int
	closed     bool
}

// NewSlotStore creates a new in-memory slot store.
func NewSlotStore() *SlotStore {
	return &SlotStore{
		slots: make(map[string][]byte),
	}
}

// Get returns a copy of the value stored under key.
func (s *SlotStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	if s.failReads != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSlotUnavailable, s.failReads)
	}
	val, ok := s.slots[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

// Put replaces the value stored under key.
func (s *SlotStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreClosed
	}
	if s.failWrites != nil {
		return fmt.Errorf("%w: %w", domain.ErrSlotUnavailable, s.failWrites)
	}
	s.slots[key] = append([]byte(nil), value...)
	s.puts++
	return nil
}

// Delete clears the slot.
func (s *SlotStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreClosed
	}
	delete(s.slots, key)
	return nil
}

// Location returns a marker for the in-memory store.
func (s *SlotStore) Location() string {
	return ":memory:"
}

// Close marks the store closed. Later calls return domain.ErrStoreClosed.
func (s *SlotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// FailWrites makes every following Put return err. Pass nil to recover.
func (s *SlotStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = err
}

// FailReads makes every following Get return err. Pass nil to recover.
func (s *SlotStore) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads = err
}

// Puts returns the number of successful writes.
func (s *SlotStore) Puts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puts
}
