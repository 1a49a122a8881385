package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/friesencafe/statusportal/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive status board",
	Long: `Open the interactive status board.

The board shows status updates, next actions, documents and the change log.
Changes written by another session are picked up automatically when the
storage backend supports watching.

Controls:
  Tab, Shift+Tab - Switch section
  ↑/k, ↓/j       - Navigate entries
  a              - Add an entry to the current section
  e              - Toggle edit mode
  x              - Export a JSON snapshot
  r              - Reload from storage
  ?              - Toggle help
  q              - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// slotKeyed is implemented by portal services that know their slot.
type slotKeyed interface {
	SlotKey() string
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newBoard(cmd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// newBoard builds the board from the configured services.
func newBoard(cmd *cobra.Command) (*tui.App, error) {
	portal, err := requirePortal()
	if err != nil {
		return nil, err
	}

	ports := tui.NewPorts(portal)
	ports.Watcher = slotWatcher
	ports.EditMode = editMode()
	ports.ExportDir = resolveExportDir("")
	if keyed, ok := portal.(slotKeyed); ok {
		ports.SlotKey = keyed.SlotKey()
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.WithContext(ctx), nil
}
