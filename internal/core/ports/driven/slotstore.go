package driven

import "context"

// SlotStore is the durable key-value slot the portal document is mirrored to.
// A slot holds one opaque value; the store never interprets it.
type SlotStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the slot is empty.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete clears the slot. Deleting an empty slot is not an error.
	Delete(ctx context.Context, key string) error

	// Location describes where slots live (file path, DSN, address).
	Location() string

	// Close releases the underlying resources.
	Close() error
}
