package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	configfile "github.com/friesencafe/statusportal/internal/adapters/driven/config/file"
	"github.com/friesencafe/statusportal/internal/adapters/driven/storage"
	slotfile "github.com/friesencafe/statusportal/internal/adapters/driven/storage/file"
	"github.com/friesencafe/statusportal/internal/adapters/driven/storage/memory"
	"github.com/friesencafe/statusportal/internal/adapters/driven/watch"
	"github.com/friesencafe/statusportal/internal/adapters/driving/cli"
	"github.com/friesencafe/statusportal/internal/core/domain"
	"github.com/friesencafe/statusportal/internal/core/ports/driven"
	"github.com/friesencafe/statusportal/internal/core/services"
	"github.com/friesencafe/statusportal/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// memoryConfigDir keeps settings and the slot in process memory for a
// scratch run that touches nothing on disk.
const memoryConfigDir = ":memory:"

func main() {
	cli.SetVersion(version)
	cli.SetBuilder(build)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// build wires the adapters for one command run. A slot store that cannot
// be opened does not fail the run so settings commands can repair it.
func build(ctx context.Context, configDir string) (*cli.Services, error) {
	config, err := openConfig(configDir)
	if err != nil {
		return nil, err
	}
	settingsService := services.NewSettingsService(config)
	if configDir == memoryConfigDir {
		if err := settingsService.SetBackend(domain.BackendMemory, ""); err != nil {
			return nil, fmt.Errorf("selecting memory backend: %w", err)
		}
	}

	svc := &cli.Services{
		Settings: settingsService,
		Close:    func() error { return nil },
	}

	if err := settingsService.Validate(); err != nil {
		svc.StorageErr = fmt.Errorf("invalid settings: %w", err)
		return svc, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	storageSettings := settings.Storage
	if storageSettings.DataDir == "" && storageSettings.Backend.UsesDataDir() {
		storageSettings.DataDir = filepath.Join(filepath.Dir(config.Path()), "data")
	}

	slot, err := storage.Open(ctx, storageSettings)
	if err != nil {
		svc.StorageErr = err
		return svc, nil
	}
	logger.Debug("portal slot %q at %s", storageSettings.SlotKey, slot.Location())

	portal := services.NewPortalStore(slot, storageSettings.SlotKey, nil)
	portal.Load(ctx)
	svc.Portal = portal

	var watcher driven.SlotWatcher
	if resolver, ok := slot.(*slotfile.SlotStore); ok {
		watcher = watch.NewSlotWatcher(resolver)
		svc.Watcher = watcher
	}

	svc.Close = func() error {
		var errs []error
		if watcher != nil {
			errs = append(errs, watcher.Close())
		}
		errs = append(errs, slot.Close())
		return errors.Join(errs...)
	}
	return svc, nil
}

func openConfig(configDir string) (driven.ConfigStore, error) {
	if configDir == memoryConfigDir {
		return memory.NewConfigStore(), nil
	}
	config, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return config, nil
}
