package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/friesencafe/statusportal/internal/core/domain"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the portal overview",
	Long:  `Print the portal header, section counts and the newest entry of every section.`,
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	portal, err := requirePortal()
	if err != nil {
		return err
	}

	doc := portal.Current()
	stats := portal.Stats()

	cmd.Println(doc.SiteTitle)
	cmd.Println(strings.Repeat("=", len([]rune(doc.SiteTitle))))
	cmd.Println(doc.HeroTagline)
	cmd.Println()
	cmd.Printf("Zuletzt aktualisiert: %s\n", doc.LastUpdatedTimestamp)
	if editMode() {
		cmd.Println("Bearbeiten: an")
	} else {
		cmd.Println("Bearbeiten: aus")
	}
	cmd.Println()

	cmd.Printf("Status (%d)\n", stats.StatusEntries)
	if len(doc.StatusEntries) > 0 {
		printStatus(cmd, doc.StatusEntries[0])
	}
	cmd.Printf("Nächste Schritte (%d)\n", stats.NextActions)
	if len(doc.NextActions) > 0 {
		printAction(cmd, doc.NextActions[0])
	}
	cmd.Printf("Dokumente (%d)\n", stats.Documents)
	if len(doc.Documents) > 0 {
		printDocument(cmd, doc.Documents[0])
	}
	cmd.Printf("Änderungsprotokoll (%d)\n", stats.Changelog)
	if len(doc.Changelog) > 0 {
		printChange(cmd, doc.Changelog[0])
	}

	return nil
}

func printStatus(cmd *cobra.Command, e domain.StatusEntry) {
	cmd.Printf("  %s  %s", e.Date, e.Title)
	if len(e.Labels) > 0 {
		cmd.Printf("  [%s]", strings.Join(e.Labels, ", "))
	}
	cmd.Println()
	if e.Body != "" {
		cmd.Printf("    %s\n", e.Body)
	}
}

func printAction(cmd *cobra.Command, a domain.ActionItem) {
	cmd.Printf("  - %s", a.Text)
	if a.HasOwner() {
		cmd.Printf("  (%s)", *a.Owner)
	}
	if a.HasDue() {
		cmd.Printf("  fällig %s", *a.Due)
	}
	cmd.Println()
}

func printDocument(cmd *cobra.Command, d domain.DocumentRef) {
	cmd.Printf("  %s  %s  [%s]\n", d.Date, d.Title, d.Type)
	cmd.Printf("    %s\n", d.URL)
	if d.Notes != nil && *d.Notes != "" {
		cmd.Printf("    %s\n", *d.Notes)
	}
}

func printChange(cmd *cobra.Command, c domain.ChangeRecord) {
	cmd.Printf("  %s  %s\n", c.Timestamp, c.Note)
}
