package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/friesencafe/statusportal/internal/adapters/driving/tui/components/form"
	"github.com/friesencafe/statusportal/internal/adapters/driving/tui/components/list"
	"github.com/friesencafe/statusportal/internal/adapters/driving/tui/components/status"
	"github.com/friesencafe/statusportal/internal/adapters/driving/tui/keymap"
	"github.com/friesencafe/statusportal/internal/adapters/driving/tui/messages"
	"github.com/friesencafe/statusportal/internal/adapters/driving/tui/styles"
	"github.com/friesencafe/statusportal/internal/core/domain"
	"github.com/friesencafe/statusportal/internal/logger"
)

// App is the status board following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	now    func() time.Time
	styles *styles.Styles
	keymap *keymap.KeyMap

	bar  *status.Bar
	list *list.EntryList
	form *form.Form // nil unless adding an entry

	// changes delivers watcher signals; nil without a watcher.
	changes <-chan struct{}
	// pendingReload is set when the slot changed while the form was open.
	pendingReload bool

	doc      domain.PortalDocument
	section  messages.Section
	editMode bool
	showHelp bool
	err      error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the board with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if ports.SlotKey == "" {
		ports.SlotKey = domain.DefaultSlotKey
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetEditMode(ports.EditMode)

	a := &App{
		ports:    ports,
		ctx:      context.Background(),
		now:      time.Now,
		styles:   s,
		keymap:   km,
		bar:      bar,
		list:     list.NewEntryList(s),
		doc:      ports.Portal.Current(),
		section:  messages.SectionStatus,
		editMode: ports.EditMode,
	}
	a.refreshRows()
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init loads the portal and starts watching for external changes.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle(a.doc.SiteTitle),
		a.loadPortal(),
	}

	if a.ports.Watcher != nil {
		ch, err := a.ports.Watcher.Watch(a.ctx, a.ports.SlotKey)
		switch {
		case err == nil:
			a.changes = ch
			cmds = append(cmds, a.waitForChange())
		case errors.Is(err, domain.ErrWatchUnsupported):
			logger.Debug("board: storage backend cannot be watched")
		default:
			logger.Warn("board: watching slot: %v", err)
		}
	}

	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.PortalLoaded:
		// The watcher also fires for our own saves, which leave the
		// timestamp as it is.
		changed := msg.Document.LastUpdatedTimestamp != a.doc.LastUpdatedTimestamp
		a.doc = msg.Document
		a.refreshRows()
		if msg.External && changed {
			a.bar.Notice("Von anderer Sitzung geändert, neu geladen")
		}
		return a, nil

	case messages.SlotChanged:
		if a.form != nil {
			// Keep the open form; the reload happens after it closes.
			a.pendingReload = true
			return a, a.waitForChange()
		}
		return a, tea.Batch(a.reloadChanged(), a.waitForChange())

	case messages.EntryAdded:
		if !msg.Accepted {
			a.bar.Fail(errEditModeOff)
			return a, nil
		}
		a.doc = msg.Document
		a.section = msg.Section
		a.list.ResetSelection()
		a.refreshRows()
		a.bar.Notice("Gespeichert")
		return a, nil

	case messages.Exported:
		if msg.Err != nil {
			a.err = msg.Err
			a.bar.Fail(msg.Err)
			return a, nil
		}
		a.bar.Notice("Exportiert: " + msg.Path)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.bar.Fail(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	if a.form != nil {
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return a, tea.Quit
	}

	if a.form != nil {
		switch {
		case keymap.Matches(keyStr, a.keymap.Cancel):
			a.closeForm()
			if a.takePendingReload() {
				return a, a.reloadChanged()
			}
			return a, nil
		case keymap.Matches(keyStr, a.keymap.Submit):
			return a, a.submit()
		}
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	}

	switch {
	case keymap.Matches(keyStr, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(keyStr, a.keymap.Help):
		a.showHelp = !a.showHelp
	case keymap.Matches(keyStr, a.keymap.NextSection):
		a.switchSection(1)
	case keymap.Matches(keyStr, a.keymap.PrevSection):
		a.switchSection(-1)
	case keymap.Matches(keyStr, a.keymap.ToggleEdit):
		a.editMode = !a.editMode
		a.bar.SetEditMode(a.editMode)
		a.bar.Clear()
	case keymap.Matches(keyStr, a.keymap.Add):
		return a, a.openForm()
	case keymap.Matches(keyStr, a.keymap.Export):
		return a, a.export()
	case keymap.Matches(keyStr, a.keymap.Reload):
		return a, a.loadPortal()
	default:
		a.list, _ = a.list.Update(msg)
	}
	return a, nil
}

func (a *App) switchSection(delta int) {
	sections := messages.Sections()
	next := (int(a.section) + delta + len(sections)) % len(sections)
	a.section = sections[next]
	a.list.ResetSelection()
	a.refreshRows()
}

func (a *App) openForm() tea.Cmd {
	if !a.editMode {
		a.bar.Fail(errEditModeOff)
		return nil
	}
	if !a.section.Editable() {
		a.bar.Notice("Das Änderungsprotokoll wird automatisch geführt")
		return nil
	}

	a.form = form.New(a.styles, "Neu: "+a.section.Title(), formFields(a.section, a.now()))
	a.form.SetWidth(a.width)
	a.bar.SetState(status.StateEditing)
	return a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.bar.Clear()
}

func (a *App) takePendingReload() bool {
	reload := a.pendingReload
	a.pendingReload = false
	return reload
}

// submit validates the form and appends the entry in the background.
func (a *App) submit() tea.Cmd {
	if missing := a.form.Missing(); missing != "" {
		a.bar.Fail(fmt.Errorf("%s fehlt", missing))
		return nil
	}

	section := a.section
	editMode := a.editMode
	portal := a.ports.Portal
	ctx := a.ctx
	v := a.form.Values()
	now := a.now()

	var appendFn func() (domain.PortalDocument, bool)
	switch section {
	case messages.SectionStatus:
		entry, err := domain.NewStatusEntry(v[3], v[0], v[1], strings.Split(v[2], ","), now)
		if err != nil {
			a.bar.Fail(err)
			return nil
		}
		appendFn = func() (domain.PortalDocument, bool) { return portal.AppendStatus(ctx, entry, editMode) }
	case messages.SectionActions:
		item, err := domain.NewActionItem(v[0], v[1], v[2])
		if err != nil {
			a.bar.Fail(err)
			return nil
		}
		appendFn = func() (domain.PortalDocument, bool) { return portal.AppendAction(ctx, item, editMode) }
	case messages.SectionDocuments:
		ref, err := domain.NewDocumentRef(v[4], v[0], v[2], v[1], v[3], now)
		if err != nil {
			a.bar.Fail(err)
			return nil
		}
		appendFn = func() (domain.PortalDocument, bool) { return portal.AppendDocument(ctx, ref, editMode) }
	case messages.SectionChangelog:
		return nil
	}

	reload := a.takePendingReload()
	a.closeForm()
	return func() tea.Msg {
		if reload {
			// Pick up the other session's document before adding to it.
			portal.Load(ctx)
		}
		doc, ok := appendFn()
		return messages.EntryAdded{Section: section, Document: doc, Accepted: ok}
	}
}

// formFields lists the inputs for each editable section.
// Value order matters to submit.
func formFields(section messages.Section, now time.Time) []form.Field {
	today := domain.FormatDate(now)
	switch section {
	case messages.SectionStatus:
		return []form.Field{
			{Label: "Titel", Placeholder: "Was ist passiert?", Required: true},
			{Label: "Text", Placeholder: "Details"},
			{Label: "Labels", Placeholder: "Info, Start"},
			{Label: "Datum", Value: today},
		}
	case messages.SectionActions:
		return []form.Field{
			{Label: "Aufgabe", Placeholder: "Was ist zu tun?", Required: true},
			{Label: "Verantwortlich", Placeholder: "Name"},
			{Label: "Fällig", Placeholder: "YYYY-MM-DD"},
		}
	case messages.SectionDocuments:
		return []form.Field{
			{Label: "Titel", Placeholder: "Protokoll: ...", Required: true},
			{Label: "URL", Placeholder: "https://...", Required: true},
			{Label: "Typ", Value: domain.DefaultDocumentType},
			{Label: "Notizen"},
			{Label: "Datum", Value: today},
		}
	case messages.SectionChangelog:
	}
	return nil
}

func (a *App) loadPortal() tea.Cmd {
	portal := a.ports.Portal
	ctx := a.ctx
	return func() tea.Msg {
		return messages.PortalLoaded{Document: portal.Load(ctx)}
	}
}

// reloadChanged reloads after a watcher signal.
func (a *App) reloadChanged() tea.Cmd {
	portal := a.ports.Portal
	ctx := a.ctx
	return func() tea.Msg {
		return messages.PortalLoaded{Document: portal.Load(ctx), External: true}
	}
}

func (a *App) waitForChange() tea.Cmd {
	ch := a.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return messages.SlotChanged{}
	}
}

func (a *App) export() tea.Cmd {
	portal := a.ports.Portal
	dir := a.ports.ExportDir
	if dir == "" {
		dir = "."
	}
	return func() tea.Msg {
		data, err := portal.ExportSnapshot()
		if err != nil {
			return messages.Exported{Err: err}
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return messages.Exported{Err: fmt.Errorf("creating export directory: %w", err)}
		}
		path := filepath.Join(dir, portal.ExportFilename())
		if err := os.WriteFile(path, data, 0644); err != nil {
			return messages.Exported{Err: fmt.Errorf("writing export: %w", err)}
		}
		return messages.Exported{Path: path}
	}
}

// refreshRows renders the active section into list rows.
func (a *App) refreshRows() {
	var rows []list.Row
	switch a.section {
	case messages.SectionStatus:
		for _, e := range a.doc.StatusEntries {
			rows = append(rows, list.Row{Meta: e.Date, Title: e.Title, Labels: e.Labels, Details: []string{e.Body}})
		}
	case messages.SectionActions:
		for _, item := range a.doc.NextActions {
			var meta []string
			if item.HasOwner() {
				meta = append(meta, *item.Owner)
			}
			if item.HasDue() {
				meta = append(meta, "fällig "+*item.Due)
			}
			rows = append(rows, list.Row{Title: item.Text, Meta: strings.Join(meta, " · ")})
		}
	case messages.SectionDocuments:
		for _, d := range a.doc.Documents {
			details := []string{d.URL}
			if d.Notes != nil {
				details = append(details, *d.Notes)
			}
			rows = append(rows, list.Row{Meta: d.Date, Title: d.Title, Labels: []string{d.Type}, Details: details})
		}
	case messages.SectionChangelog:
		for _, c := range a.doc.Changelog {
			rows = append(rows, list.Row{Meta: c.Timestamp, Title: c.Note})
		}
	}
	a.list.SetRows(rows)
}

// View renders the board.
func (a *App) View() string {
	if !a.ready {
		return "Lade..."
	}

	parts := []string{a.renderHeader(), a.renderTabs(), ""}
	if a.form != nil {
		parts = append(parts, a.form.View())
	} else {
		parts = append(parts, a.list.View())
	}
	if a.showHelp {
		parts = append(parts, "", a.renderHelp())
	}

	body := strings.Join(parts, "\n")
	gap := a.height - lipgloss.Height(body) - 1
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + a.bar.View()
}

func (a *App) renderHeader() string {
	stats := a.doc.Stats()
	lines := []string{
		a.styles.Title.Render(a.doc.SiteTitle),
		a.styles.Normal.Render(a.doc.HeroTagline),
		a.styles.Muted.Render(fmt.Sprintf(
			"Zuletzt aktualisiert: %s · %d Status · %d Dokumente · %d Aufgaben",
			a.doc.LastUpdatedTimestamp, stats.StatusEntries, stats.Documents, stats.NextActions,
		)),
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderTabs() string {
	stats := a.doc.Stats()
	counts := map[messages.Section]int{
		messages.SectionStatus:    stats.StatusEntries,
		messages.SectionActions:   stats.NextActions,
		messages.SectionDocuments: stats.Documents,
		messages.SectionChangelog: stats.Changelog,
	}

	tabs := make([]string, 0, len(counts))
	for _, s := range messages.Sections() {
		label := fmt.Sprintf("%s (%d)", s.Title(), counts[s])
		if s == a.section {
			tabs = append(tabs, a.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, a.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderHelp() string {
	var lines []string
	for _, group := range a.keymap.FullHelp() {
		hints := make([]string, 0, len(group))
		for _, b := range group {
			h := b.Help()
			hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
		}
		lines = append(lines, strings.Join(hints, "   "))
	}
	return a.styles.Help.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the terminal size.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.bar.SetWidth(width)
	// Header, tabs and status bar take six lines.
	a.list.SetDimensions(width, height-6)
	if a.form != nil {
		a.form.SetWidth(width)
	}
}

// Section returns the active section.
func (a *App) Section() messages.Section {
	return a.section
}

// EditMode returns the state of the edit gate.
func (a *App) EditMode() bool {
	return a.editMode
}

// Document returns the displayed document.
func (a *App) Document() domain.PortalDocument {
	return a.doc
}

// FormOpen reports whether the add form is shown.
func (a *App) FormOpen() bool {
	return a.form != nil
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// StatusBar returns the status bar, mostly for tests.
func (a *App) StatusBar() *status.Bar {
	return a.bar
}
