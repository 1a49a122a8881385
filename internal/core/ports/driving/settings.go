package driving

import "github.com/friesencafe/statusportal/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetBackend switches the storage backend.
	// RedisURL is only used (and required) for the redis backend.
	SetBackend(backend domain.StorageBackend, redisURL string) error

	// SetEditMode sets the default edit gate.
	SetEditMode(enabled bool) error

	// Validate checks that the configured backend is usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
