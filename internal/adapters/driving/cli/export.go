package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the portal as JSON",
	Long: `Write the current portal document as indented JSON.

The file is named friesencafe-content-YYYY-MM-DD.json and is written to the
configured export directory unless --out is given. The snapshot can be
published as a static file.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportDir    string
	exportStdout bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "Target directory (default from settings)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write the snapshot to stdout instead of a file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	portal, err := requirePortal()
	if err != nil {
		return err
	}

	data, err := portal.ExportSnapshot()
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	if exportStdout {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	dir := resolveExportDir(exportDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, portal.ExportFilename())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	cmd.Printf("Exported to %s\n", path)
	return nil
}

// resolveExportDir prefers the flag value, then the configured directory.
func resolveExportDir(flag string) string {
	if flag != "" {
		return flag
	}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Export.Dir != "" {
			return settings.Export.Dir
		}
	}
	return "."
}
