package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/friesencafe/statusportal/internal/core/ports/driven"
	"github.com/friesencafe/statusportal/internal/core/ports/driving"
	"github.com/friesencafe/statusportal/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services configured by Bootstrap or directly by tests.
var (
	portalService   driving.PortalService
	settingsService driving.SettingsService
	slotWatcher     driven.SlotWatcher

	// storageErr explains why portalService is missing.
	storageErr error
)

// now is the clock used for default dates.
var now = time.Now

// Global flags.
var (
	verbose   bool
	configDir string
	noEdit    bool
)

// Services is what a Builder wires for one command run.
type Services struct {
	Portal   driving.PortalService
	Settings driving.SettingsService
	Watcher  driven.SlotWatcher

	// StorageErr is set when settings loaded but the slot store did not open.
	StorageErr error

	// Close releases the slot store and watcher.
	Close func() error
}

// Builder creates services for the given configuration directory.
type Builder func(ctx context.Context, configDir string) (*Services, error)

var (
	builder      Builder
	closeWithRun func() error
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Friesen-Café status portal",
	Long: `portal keeps the Friesen-Café status board: status updates, next
actions, meeting documents and a change log.

Every accepted change is written to the configured storage slot right away.
Use "portal export" for a JSON snapshot and "portal tui" for the board.`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default $PORTAL_HOME or ~/.friesencafe, :memory: for a scratch run)")
	rootCmd.PersistentFlags().BoolVar(&noEdit, "no-edit", false, "Open the portal read-only for this run")
}

// SetBuilder registers the function that wires services before a command runs.
func SetBuilder(b Builder) {
	builder = b
}

// SetServices installs ready-made services.
func SetServices(portal driving.PortalService, settings driving.SettingsService, watcher driven.SlotWatcher) {
	portalService = portal
	settingsService = settings
	slotWatcher = watcher
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases what the builder opened.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := shutdown(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if builder == nil || portalService != nil {
		return nil
	}

	svc, err := builder(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	SetServices(svc.Portal, svc.Settings, svc.Watcher)
	storageErr = svc.StorageErr
	closeWithRun = svc.Close
	return nil
}

func shutdown() error {
	if closeWithRun == nil {
		return nil
	}
	err := closeWithRun()
	closeWithRun = nil
	return err
}

// requirePortal returns the portal service or explains why it is missing.
func requirePortal() (driving.PortalService, error) {
	if portalService != nil {
		return portalService, nil
	}
	if storageErr != nil {
		return nil, fmt.Errorf("portal service not configured: %w", storageErr)
	}
	return nil, errors.New("portal service not configured")
}

// editMode is the configured edit gate, closed by --no-edit.
func editMode() bool {
	if noEdit {
		return false
	}
	if settingsService == nil {
		return true
	}
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("reading settings: %v", err)
		return true
	}
	return settings.Portal.EditMode
}
