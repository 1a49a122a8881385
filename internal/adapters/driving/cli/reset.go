package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the stored portal",
	Long: `Delete the stored portal document. The next start shows the seed
document again. Export first if you want to keep the current content.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var resetYes bool

// isTerminal reports whether confirmation can be asked interactively.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	portal, err := requirePortal()
	if err != nil {
		return err
	}

	if !resetYes {
		if !isTerminal() {
			return errors.New("refusing to reset without --yes when not attached to a terminal")
		}
		cmd.Print("Alle lokalen Daten löschen? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		if !confirmed(readLine(reader)) {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := portal.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	cmd.Println("Stored portal cleared.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func confirmed(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes", "j", "ja":
		return true
	default:
		return false
	}
}
