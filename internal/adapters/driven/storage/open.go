// Package storage selects the slot store for the configured backend.
package storage

import (
	"context"
	"fmt"

	"github.com/friesencafe/statusportal/internal/adapters/driven/storage/file"
	"github.com/friesencafe/statusportal/internal/adapters/driven/storage/memory"
	"github.com/friesencafe/statusportal/internal/adapters/driven/storage/redis"
	"github.com/friesencafe/statusportal/internal/adapters/driven/storage/sqlite"
	"github.com/friesencafe/statusportal/internal/core/domain"
	"github.com/friesencafe/statusportal/internal/core/ports/driven"
	"github.com/friesencafe/statusportal/internal/logger"
)

// Open creates the slot store described by settings.
func Open(ctx context.Context, settings domain.StorageSettings) (driven.SlotStore, error) {
	var (
		store driven.SlotStore
		err   error
	)

	switch settings.Backend {
	case domain.BackendFile:
		store, err = file.NewSlotStore(settings.DataDir)
	case domain.BackendSQLite:
		store, err = sqlite.NewStore(settings.DataDir)
	case domain.BackendRedis:
		store, err = redis.Open(ctx, settings.RedisURL)
	case domain.BackendMemory:
		store = memory.NewSlotStore()
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, settings.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s slot store: %w", settings.Backend, err)
	}

	logger.Debug("slot store: %s at %s", settings.Backend, store.Location())
	return store, nil
}
