// Package watch notifies about slot files rewritten by another session.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/friesencafe/statusportal/internal/core/domain"
	"github.com/friesencafe/statusportal/internal/core/ports/driven"
	"github.com/friesencafe/statusportal/internal/logger"
)

// Ensure SlotWatcher implements the interface.
var _ driven.SlotWatcher = (*SlotWatcher)(nil)

// Resolver maps a slot key to the file backing it.
type Resolver interface {
	Path(key string) (string, error)
}

// SlotWatcher watches the directory holding slot files. The directory is
// watched rather than the file because writes replace the file by rename.
type SlotWatcher struct {
	resolver Resolver

	mu       sync.Mutex
	watchers []*fsnotify.Watcher
	closed   bool
}

// NewSlotWatcher creates a watcher for slots resolved by r.
func NewSlotWatcher(r Resolver) *SlotWatcher {
	return &SlotWatcher{resolver: r}
}

// Watch emits on the returned channel whenever the slot file for key is
// created, written, removed or renamed. Bursts are coalesced: the channel
// buffers at most one pending signal.
func (w *SlotWatcher) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	if w.resolver == nil {
		return nil, domain.ErrWatchUnsupported
	}
	path, err := w.resolver.Path(key)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		fw.Close()
		return nil, domain.ErrStoreClosed
	}
	w.watchers = append(w.watchers, fw)
	w.mu.Unlock()

	out := make(chan struct{}, 1)
	go w.loop(ctx, fw, path, out)

	logger.Debug("watching slot file %s", path)
	return out, nil
}

// Close stops all watches and closes their channels.
func (w *SlotWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	var firstErr error
	for _, fw := range w.watchers {
		if err := fw.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.watchers = nil
	return firstErr
}

func (w *SlotWatcher) loop(ctx context.Context, fw *fsnotify.Watcher, path string, out chan<- struct{}) {
	defer close(out)
	defer fw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !isSlotChange(event, path) {
				continue
			}
			select {
			case out <- struct{}{}:
			default:
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("slot watcher: %v", err)
		}
	}
}

// isSlotChange reports whether event touches the slot file itself.
// Temp files written next to the slot and chmod-only events are ignored.
func isSlotChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
