package domain

const unknownDescription = "Unknown"

// StorageBackend selects where the durable slot lives.
type StorageBackend string

// Available storage backends.
const (
	// BackendFile stores the slot as a JSON file in the data directory.
	BackendFile StorageBackend = "file"

	// BackendSQLite stores the slot in a key-value table of a SQLite database.
	BackendSQLite StorageBackend = "sqlite"

	// BackendRedis stores the slot as a Redis string.
	BackendRedis StorageBackend = "redis"

	// BackendMemory keeps the slot in process memory (nothing survives exit).
	BackendMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case BackendFile, BackendSQLite, BackendRedis, BackendMemory:
		return true
	default:
		return false
	}
}

// IsDurable returns true if the slot survives process exit.
func (b StorageBackend) IsDurable() bool {
	return b != BackendMemory
}

// UsesDataDir returns true if the backend stores files in the data directory.
func (b StorageBackend) UsesDataDir() bool {
	return b == BackendFile || b == BackendSQLite
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case BackendFile:
		return "File (JSON file per slot)"
	case BackendSQLite:
		return "SQLite (embedded database)"
	case BackendRedis:
		return "Redis (key-value server)"
	case BackendMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// StorageSettings configures the durable slot.
type StorageSettings struct {
	// Backend selects the slot implementation.
	Backend StorageBackend

	// DataDir holds file and sqlite slots. Empty means the default
	// directory under the user's home.
	DataDir string

	// RedisURL is required for the redis backend (redis://host:port/db).
	RedisURL string

	// SlotKey names the durable slot.
	SlotKey string
}

// IsConfigured returns true if the backend has everything it needs.
func (s StorageSettings) IsConfigured() bool {
	if !s.Backend.IsValid() || s.SlotKey == "" {
		return false
	}
	if s.Backend == BackendRedis {
		return s.RedisURL != ""
	}
	return true
}

// PortalSettings holds editing behaviour.
type PortalSettings struct {
	// EditMode is the default state of the edit gate.
	EditMode bool
}

// ExportSettings holds export behaviour.
type ExportSettings struct {
	// Dir is where export files are written by default.
	Dir string
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	Storage StorageSettings
	Portal  PortalSettings
	Export  ExportSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Data lives in a JSON file under the default data directory and
// edit mode is on, matching a fresh browser session.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: BackendFile,
			SlotKey: DefaultSlotKey,
		},
		Portal: PortalSettings{
			EditMode: true,
		},
		Export: ExportSettings{
			Dir: ".",
		},
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{
		BackendFile,
		BackendSQLite,
		BackendRedis,
		BackendMemory,
	}
}
