// Package redis provides a Redis-backed implementation of driven.SlotStore.
// Slots are plain string values under the "portal:" key prefix.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/friesencafe/statusportal/internal/core/domain"
	"github.com/friesencafe/statusportal/internal/core/ports/driven"
)

// Ensure SlotStore implements the interface.
var _ driven.SlotStore = (*SlotStore)(nil)

const (
	keyPrefix   = "portal:"
	pingTimeout = 5 * time.Second
)

// SlotStore keeps slots in Redis.
type SlotStore struct {
	client *redis.Client
	addr   string
}

// Open parses url, connects and pings the server.
func Open(ctx context.Context, url string) (*SlotStore, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: redis url is empty", domain.ErrInvalidInput)
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", domain.ErrSlotUnavailable, opts.Addr, err)
	}

	return NewSlotStore(client), nil
}

// NewSlotStore wraps an existing client.
func NewSlotStore(client *redis.Client) *SlotStore {
	return &SlotStore{
		client: client,
		addr:   client.Options().Addr,
	}
}

// Get returns the slot value.
func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, slotKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSlotUnavailable, err)
	}
	if len(data) == 0 {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

// Put stores value without expiry.
func (s *SlotStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, slotKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSlotUnavailable, err)
	}
	return nil
}

// Delete removes the slot.
func (s *SlotStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, slotKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSlotUnavailable, err)
	}
	return nil
}

// Location returns the server address.
func (s *SlotStore) Location() string {
	return "redis://" + s.addr
}

// Close closes the client.
func (s *SlotStore) Close() error {
	return s.client.Close()
}

func slotKey(key string) string {
	return keyPrefix + key
}
