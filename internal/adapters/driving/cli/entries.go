package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/friesencafe/statusportal/internal/core/domain"
)

// errRejected is returned when the portal leaves the document unchanged.
var errRejected = errors.New("entry not added: edit mode is off")

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Manage status updates",
}

var statusAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a status update",
	Long: `Add a status update at the top of the status section.

Examples:
  portal status add "Mietvertrag unterschrieben" --body "Übergabe am 1.11." --labels Info,Meilenstein`,
	Args: cobra.ExactArgs(1),
	RunE: runStatusAdd,
}

var statusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List status updates, newest first",
	Args:  cobra.NoArgs,
	RunE:  runStatusList,
}

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Manage next actions",
}

var actionAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a next action",
	Args:  cobra.ExactArgs(1),
	RunE:  runActionAdd,
}

var actionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List next actions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runActionList,
}

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage document references",
}

var docAddCmd = &cobra.Command{
	Use:   "add [title] [url]",
	Short: "Attach a document reference",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocAdd,
}

var docListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDocList,
}

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Show the change log, newest first",
	Args:  cobra.NoArgs,
	RunE:  runChangelog,
}

// Entry flags.
var (
	entryDate     string
	statusBody    string
	statusLabels  []string
	actionOwner   string
	actionDue     string
	docType       string
	docNotes      string
	changelogTail int
)

func init() {
	statusAddCmd.Flags().StringVar(&entryDate, "date", "", "Date (YYYY-MM-DD, default today)")
	statusAddCmd.Flags().StringVarP(&statusBody, "body", "b", "", "Details")
	statusAddCmd.Flags().StringSliceVarP(&statusLabels, "labels", "l", nil, "Comma-separated labels")

	actionAddCmd.Flags().StringVarP(&actionOwner, "owner", "o", "", "Responsible person")
	actionAddCmd.Flags().StringVar(&actionDue, "due", "", "Due date (YYYY-MM-DD)")

	docAddCmd.Flags().StringVar(&entryDate, "date", "", "Date (YYYY-MM-DD, default today)")
	docAddCmd.Flags().StringVarP(&docType, "type", "t", domain.DefaultDocumentType, "Document type")
	docAddCmd.Flags().StringVarP(&docNotes, "notes", "n", "", "Notes")

	changelogCmd.Flags().IntVarP(&changelogTail, "limit", "n", 0, "Show at most n rows (0 = all)")

	statusCmd.AddCommand(statusAddCmd, statusListCmd)
	actionCmd.AddCommand(actionAddCmd, actionListCmd)
	docCmd.AddCommand(docAddCmd, docListCmd)
	rootCmd.AddCommand(statusCmd, actionCmd, docCmd, changelogCmd)
}

func runStatusAdd(cmd *cobra.Command, args []string) error {
	portal, err := requirePortal()
	if err != nil {
		return err
	}

	entry, err := domain.NewStatusEntry(entryDate, args[0], statusBody, statusLabels, now())
	if err != nil {
		return err
	}

	if _, ok := portal.AppendStatus(cmd.Context(), entry, editMode()); !ok {
		return errRejected
	}
	cmd.Printf("Status added: %s\n", entry.Title)
	return nil
}

func runStatusList(cmd *cobra.Command, _ []string) error {
	portal, err := requirePortal()
	if err != nil {
		return err
	}

	entries := portal.Current().StatusEntries
	if len(entries) == 0 {
		cmd.Println("No status updates.")
		return nil
	}
	for _, e := range entries {
		printStatus(cmd, e)
	}
	return nil
}

func runActionAdd(cmd *cobra.Command, args []string) error {
	portal, err := requirePortal()
	if err != nil {
		return err
	}

	item, err := domain.NewActionItem(args[0], actionOwner, actionDue)
	if err != nil {
		return err
	}

	if _, ok := portal.AppendAction(cmd.Context(), item, editMode()); !ok {
		return errRejected
	}
	cmd.Printf("Action added: %s\n", item.Text)
	return nil
}

func runActionList(cmd *cobra.Command, _ []string) error {
	portal, err := requirePortal()
	if err != nil {
		return err
	}

	items := portal.Current().NextActions
	if len(items) == 0 {
		cmd.Println("No next actions.")
		return nil
	}
	for _, a := range items {
		printAction(cmd, a)
	}
	return nil
}

func runDocAdd(cmd *cobra.Command, args []string) error {
	portal, err := requirePortal()
	if err != nil {
		return err
	}

	ref, err := domain.NewDocumentRef(entryDate, args[0], docType, args[1], docNotes, now())
	if err != nil {
		return err
	}

	if _, ok := portal.AppendDocument(cmd.Context(), ref, editMode()); !ok {
		return errRejected
	}
	cmd.Printf("Document attached: %s\n", ref.Title)
	return nil
}

func runDocList(cmd *cobra.Command, _ []string) error {
	portal, err := requirePortal()
	if err != nil {
		return err
	}

	docs := portal.Current().Documents
	if len(docs) == 0 {
		cmd.Println("No documents.")
		return nil
	}
	for _, d := range docs {
		printDocument(cmd, d)
	}
	return nil
}

func runChangelog(cmd *cobra.Command, _ []string) error {
	portal, err := requirePortal()
	if err != nil {
		return err
	}

	rows := portal.Current().Changelog
	if changelogTail > 0 && len(rows) > changelogTail {
		rows = rows[:changelogTail]
	}
	if len(rows) == 0 {
		cmd.Println("Change log is empty.")
		return nil
	}
	for _, c := range rows {
		printChange(cmd, c)
	}
	return nil
}
