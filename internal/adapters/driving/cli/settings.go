package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/friesencafe/statusportal/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure storage and editing options.

Settings are stored in config.toml inside the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend [file|sqlite|redis|memory]",
	Short: "Set the storage backend",
	Long: `Set where the portal document is stored.

Available backends:
  file    - JSON file in the data directory (default)
  sqlite  - SQLite database in the data directory
  redis   - Redis server (requires --redis-url)
  memory  - Process memory only, nothing is kept`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsBackend,
}

var settingsEditModeCmd = &cobra.Command{
	Use:   "edit-mode [on|off]",
	Short: "Set the default edit mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsEditMode,
}

var settingsRedisURL string

func init() {
	settingsBackendCmd.Flags().StringVar(&settingsRedisURL, "redis-url", "", "Redis URL (redis://host:port/db)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	settingsCmd.AddCommand(settingsEditModeCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	if settings.Storage.Backend.UsesDataDir() {
		dataDir := settings.Storage.DataDir
		if dataDir == "" {
			dataDir = "~/.friesencafe/data"
		}
		cmd.Printf("  Data directory: %s\n", dataDir)
	}
	if settings.Storage.Backend == domain.BackendRedis {
		cmd.Printf("  Redis URL: %s\n", settings.Storage.RedisURL)
	}
	cmd.Printf("  Slot key: %s\n", settings.Storage.SlotKey)
	status := "configured"
	if !settings.Storage.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Portal]")
	cmd.Printf("  Edit mode: %s\n", onOff(settings.Portal.EditMode))
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Directory: %s\n", settings.Export.Dir)

	return nil
}

func runSettingsBackend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.StorageBackend(strings.ToLower(args[0]))
	if err := settingsService.SetBackend(backend, settingsRedisURL); err != nil {
		return fmt.Errorf("failed to set backend: %w", err)
	}

	cmd.Printf("Storage backend set to: %s\n", backend.Description())
	return nil
}

func runSettingsEditMode(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "an":
		enabled = true
	case "off", "false", "aus":
		enabled = false
	default:
		return fmt.Errorf("%w: edit mode must be on or off", domain.ErrInvalidInput)
	}

	if err := settingsService.SetEditMode(enabled); err != nil {
		return fmt.Errorf("failed to set edit mode: %w", err)
	}

	cmd.Printf("Edit mode: %s\n", onOff(enabled))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
