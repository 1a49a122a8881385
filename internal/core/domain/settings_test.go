package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageBackend_IsValid(t *testing.T) {
	tests := []struct {
		backend StorageBackend
		valid   bool
	}{
		{BackendFile, true},
		{BackendSQLite, true},
		{BackendRedis, true},
		{BackendMemory, true},
		{StorageBackend("localstorage"), false},
		{StorageBackend(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.backend.IsValid())
		})
	}
}

func TestStorageBackend_Properties(t *testing.T) {
	assert.True(t, BackendFile.IsDurable())
	assert.False(t, BackendMemory.IsDurable())

	assert.True(t, BackendFile.UsesDataDir())
	assert.True(t, BackendSQLite.UsesDataDir())
	assert.False(t, BackendRedis.UsesDataDir())

	assert.Equal(t, "sqlite", BackendSQLite.String())
	assert.Equal(t, "Unknown", StorageBackend("nope").Description())
	for _, b := range AllStorageBackends() {
		assert.NotEqual(t, "Unknown", b.Description())
	}
}

func TestStorageSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings StorageSettings
		expected bool
	}{
		{"file with key", StorageSettings{Backend: BackendFile, SlotKey: "k"}, true},
		{"missing key", StorageSettings{Backend: BackendFile}, false},
		{"redis without url", StorageSettings{Backend: BackendRedis, SlotKey: "k"}, false},
		{"redis with url", StorageSettings{Backend: BackendRedis, SlotKey: "k", RedisURL: "redis://x:6379"}, true},
		{"invalid backend", StorageSettings{Backend: "x", SlotKey: "k"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()
	assert.Equal(t, BackendFile, s.Storage.Backend)
	assert.Equal(t, DefaultSlotKey, s.Storage.SlotKey)
	assert.True(t, s.Portal.EditMode)
	assert.Equal(t, ".", s.Export.Dir)
	assert.True(t, s.Storage.IsConfigured())
}
