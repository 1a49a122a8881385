package services

import (
	"fmt"

	"github.com/friesencafe/statusportal/internal/core/domain"
	"github.com/friesencafe/statusportal/internal/core/ports/driven"
	"github.com/friesencafe/statusportal/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend  = "storage.backend"
	keyStorageDataDir  = "storage.data_dir"
	keyStorageRedisURL = "storage.redis_url"
	keyStorageSlotKey  = "storage.slot_key"
	keyPortalEditMode  = "portal.edit_mode"
	keyExportDir       = "export.dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings, filling gaps with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend:  s.getBackend(defaults.Storage.Backend),
			DataDir:  s.configStore.GetString(keyStorageDataDir), // Empty selects the home default
			RedisURL: s.configStore.GetString(keyStorageRedisURL),
			SlotKey:  s.getString(keyStorageSlotKey, defaults.Storage.SlotKey),
		},
		Portal: domain.PortalSettings{
			EditMode: s.getBool(keyPortalEditMode, defaults.Portal.EditMode),
		},
		Export: domain.ExportSettings{
			Dir: s.getString(keyExportDir, defaults.Export.Dir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedBackend, settings.Storage.Backend)
	}

	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if err := s.setOrUnset(keyStorageDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save storage data_dir: %w", err)
	}
	if err := s.setOrUnset(keyStorageRedisURL, settings.Storage.RedisURL); err != nil {
		return fmt.Errorf("save storage redis_url: %w", err)
	}
	if err := s.setOrUnset(keyStorageSlotKey, settings.Storage.SlotKey); err != nil {
		return fmt.Errorf("save storage slot_key: %w", err)
	}
	if err := s.configStore.Set(keyPortalEditMode, settings.Portal.EditMode); err != nil {
		return fmt.Errorf("save portal edit_mode: %w", err)
	}
	if err := s.setOrUnset(keyExportDir, settings.Export.Dir); err != nil {
		return fmt.Errorf("save export dir: %w", err)
	}

	return nil
}

// SetBackend switches the storage backend.
func (s *SettingsService) SetBackend(backend domain.StorageBackend, redisURL string) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedBackend, backend)
	}
	if backend == domain.BackendRedis && redisURL == "" {
		return fmt.Errorf("%w: redis backend requires a URL", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Storage.Backend = backend
	if backend == domain.BackendRedis {
		settings.Storage.RedisURL = redisURL
	}

	return s.Save(settings)
}

// SetEditMode sets the default edit gate.
func (s *SettingsService) SetEditMode(enabled bool) error {
	if err := s.configStore.Set(keyPortalEditMode, enabled); err != nil {
		return fmt.Errorf("save portal edit_mode: %w", err)
	}
	return nil
}

// Validate checks that the configured backend is usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	storage := settings.Storage
	if !storage.Backend.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedBackend, storage.Backend)
	}
	if storage.SlotKey == "" {
		return fmt.Errorf("%w: slot key is empty", domain.ErrInvalidInput)
	}
	if storage.Backend == domain.BackendRedis && storage.RedisURL == "" {
		return fmt.Errorf("%w: redis backend requires storage.redis_url", domain.ErrInvalidInput)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// getBackend keeps unknown stored values so Validate can report them.
func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	return domain.StorageBackend(val)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, ok := s.configStore.GetBool(key)
	if !ok {
		return defaultVal
	}
	return val
}

func (s *SettingsService) setOrUnset(key, value string) error {
	if value == "" {
		return s.configStore.Unset(key)
	}
	return s.configStore.Set(key, value)
}
