package driven

import "context"

// SlotWatcher notifies about changes made to a durable slot from outside
// the current session. There is no ordering or conflict detection:
// the last writer wins.
type SlotWatcher interface {
	// Watch emits a value every time the slot is rewritten or removed.
	// The channel is closed when ctx is cancelled or the watcher closes.
	Watch(ctx context.Context, key string) (<-chan struct{}, error)

	// Close stops all watches.
	Close() error
}
