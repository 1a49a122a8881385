package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/friesencafe/statusportal/internal/adapters/driving/tui/components/status"
	"github.com/friesencafe/statusportal/internal/adapters/driving/tui/messages"
	"github.com/friesencafe/statusportal/internal/core/domain"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T) (*App, *MockPortalService) {
	t.Helper()
	portal := newMockPortal()
	app, err := NewApp(NewPorts(portal))
	require.NoError(t, err)
	app.now = func() time.Time { return fixedNow }
	app.SetDimensions(100, 30)
	return app, portal
}

// runCmd executes cmd and feeds the resulting message back into the app.
func runCmd(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	app.Update(cmd())
}

func TestNewApp_Success(t *testing.T) {
	portal := newMockPortal()

	app, err := NewApp(NewPorts(portal))

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.SectionStatus, app.Section())
	assert.True(t, app.EditMode())
	assert.False(t, app.FormOpen())
	assert.Equal(t, portal.Doc.SiteTitle, app.Document().SiteTitle)
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingPortalService)
	assert.Nil(t, app)
}

func TestNewApp_ReadOnly(t *testing.T) {
	ports := NewPorts(newMockPortal())
	ports.EditMode = false

	app, err := NewApp(ports)

	require.NoError(t, err)
	assert.False(t, app.EditMode())
	assert.False(t, app.StatusBar().EditMode())
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	result := app.WithContext(ctx)

	assert.Same(t, app, result)
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init_LoadsPortal(t *testing.T) {
	app, portal := newTestApp(t)

	cmd := app.Init()

	require.NotNil(t, cmd)
	runCmd(t, app, app.loadPortal())
	assert.Equal(t, 1, portal.LoadCalls)
}

func TestApp_Init_WatchesSlot(t *testing.T) {
	portal := newMockPortal()
	watcher := &MockSlotWatcher{Ch: make(chan struct{}, 1)}
	ports := NewPorts(portal)
	ports.Watcher = watcher
	ports.SlotKey = "custom_slot"
	app, err := NewApp(ports)
	require.NoError(t, err)

	app.Init()

	assert.Equal(t, "custom_slot", watcher.Key)
	require.NotNil(t, app.waitForChange())

	watcher.Ch <- struct{}{}
	msg := app.waitForChange()()
	assert.Equal(t, messages.SlotChanged{}, msg)
}

func TestApp_Init_WatchUnsupported(t *testing.T) {
	ports := NewPorts(newMockPortal())
	ports.Watcher = &MockSlotWatcher{WatchErr: domain.ErrWatchUnsupported}
	app, err := NewApp(ports)
	require.NoError(t, err)

	cmd := app.Init()

	assert.NotNil(t, cmd)
	assert.Nil(t, app.waitForChange())
}

func TestApp_WaitForChange_ClosedChannel(t *testing.T) {
	ch := make(chan struct{})
	ports := NewPorts(newMockPortal())
	ports.Watcher = &MockSlotWatcher{Ch: ch}
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.Init()

	close(ch)

	assert.Nil(t, app.waitForChange()())
}

func TestApp_SlotChanged_Reloads(t *testing.T) {
	portal := newMockPortal()
	ports := NewPorts(portal)
	ports.Watcher = &MockSlotWatcher{Ch: make(chan struct{}, 1)}
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	app.Init()

	portal.Doc.SiteTitle = "Von nebenan"
	portal.Doc.LastUpdatedTimestamp = "2024-03-02T10:00:00.000Z"

	_, cmd := app.Update(messages.SlotChanged{})
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.NotEmpty(t, batch)
	app.Update(batch[0]())

	assert.Equal(t, 1, portal.LoadCalls)
	assert.Equal(t, "Von nebenan", app.Document().SiteTitle)
	assert.Equal(t, status.StateNotice, app.StatusBar().State())
	assert.Equal(t, "Von anderer Sitzung geändert, neu geladen", app.StatusBar().Message())
}

func TestApp_SlotChanged_OwnSaveKeepsNotice(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(runeKey("a"))
	app.form.SetValue(0, "Eigene Änderung")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, app, cmd)
	require.Equal(t, "Gespeichert", app.StatusBar().Message())

	// The watcher reports the board's own write.
	runCmd(t, app, app.reloadChanged())

	assert.Equal(t, "Gespeichert", app.StatusBar().Message())
	assert.Equal(t, "Eigene Änderung", app.Document().StatusEntries[0].Title)
}

func TestApp_SlotChanged_ReloadsAfterCancel(t *testing.T) {
	app, portal := newTestApp(t)

	app.Update(runeKey("a"))
	require.True(t, app.FormOpen())
	_, cmd := app.Update(messages.SlotChanged{})
	assert.Nil(t, cmd)
	assert.True(t, app.FormOpen(), "open form is kept")
	assert.Equal(t, 0, portal.LoadCalls)

	portal.Doc.SiteTitle = "Von nebenan"
	portal.Doc.LastUpdatedTimestamp = "2024-03-02T10:00:00.000Z"

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.FormOpen())
	runCmd(t, app, cmd)

	assert.Equal(t, 1, portal.LoadCalls)
	assert.Equal(t, "Von nebenan", app.Document().SiteTitle)
	assert.Equal(t, status.StateNotice, app.StatusBar().State())

	// The deferred reload runs once.
	app.Update(runeKey("a"))
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
}

func TestApp_SlotChanged_ReloadsBeforeSubmit(t *testing.T) {
	app, portal := newTestApp(t)
	before := len(portal.Doc.StatusEntries)

	app.Update(runeKey("a"))
	app.Update(messages.SlotChanged{})
	portal.Doc.StatusEntries = append([]domain.StatusEntry{{Date: "2024-03-01", Title: "Von nebenan"}}, portal.Doc.StatusEntries...)

	app.form.SetValue(0, "Eigene Änderung")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, app, cmd)

	assert.Equal(t, 1, portal.LoadCalls)
	doc := app.Document()
	require.Len(t, doc.StatusEntries, before+2)
	assert.Equal(t, "Eigene Änderung", doc.StatusEntries[0].Title)
	assert.Equal(t, "Von nebenan", doc.StatusEntries[1].Title)
	assert.Equal(t, "Gespeichert", app.StatusBar().Message())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(NewPorts(newMockPortal()))
	require.NoError(t, err)
	assert.Equal(t, "Lade...", app.View())

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
	assert.Contains(t, app.View(), "Friesen")
}

func TestApp_Update_PortalLoaded(t *testing.T) {
	app, _ := newTestApp(t)
	doc := domain.SeedDocument(fixedNow)
	doc.SiteTitle = "Anderer Titel"

	app.Update(messages.PortalLoaded{Document: doc})

	assert.Equal(t, "Anderer Titel", app.Document().SiteTitle)
	assert.Contains(t, app.View(), "Anderer Titel")
	assert.NotEqual(t, status.StateNotice, app.StatusBar().State(), "manual loads stay quiet")
}

func TestApp_SectionNavigation(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name string
		key  tea.KeyMsg
		want messages.Section
	}{
		{name: "tab to actions", key: tea.KeyMsg{Type: tea.KeyTab}, want: messages.SectionActions},
		{name: "tab to documents", key: tea.KeyMsg{Type: tea.KeyTab}, want: messages.SectionDocuments},
		{name: "tab to changelog", key: tea.KeyMsg{Type: tea.KeyTab}, want: messages.SectionChangelog},
		{name: "tab wraps", key: tea.KeyMsg{Type: tea.KeyTab}, want: messages.SectionStatus},
		{name: "shift+tab wraps back", key: tea.KeyMsg{Type: tea.KeyShiftTab}, want: messages.SectionChangelog},
		{name: "h goes back", key: runeKey("h"), want: messages.SectionDocuments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.Update(tt.key)
			assert.Equal(t, tt.want, app.Section())
		})
	}
}

func TestApp_ToggleEdit(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(runeKey("e"))
	assert.False(t, app.EditMode())
	assert.False(t, app.StatusBar().EditMode())

	app.Update(runeKey("e"))
	assert.True(t, app.EditMode())
}

func TestApp_ToggleHelp(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(runeKey("?"))

	assert.True(t, app.showHelp)
	assert.Contains(t, app.View(), "export")
}

func TestApp_Quit(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_AddStatus(t *testing.T) {
	app, portal := newTestApp(t)
	before := len(portal.Doc.StatusEntries)

	app.Update(runeKey("a"))
	require.True(t, app.FormOpen())
	assert.Equal(t, status.StateEditing, app.StatusBar().State())

	app.form.SetValue(0, "Bauantrag eingereicht")
	app.form.SetValue(1, "Unterlagen liegen beim Amt.")
	app.form.SetValue(2, "Behörde, Info, Behörde")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, app.FormOpen())
	runCmd(t, app, cmd)

	doc := app.Document()
	require.Len(t, doc.StatusEntries, before+1)
	entry := doc.StatusEntries[0]
	assert.Equal(t, "Bauantrag eingereicht", entry.Title)
	assert.Equal(t, "2024-03-01", entry.Date)
	assert.Equal(t, []string{"Behörde", "Info"}, entry.Labels)
	assert.Equal(t, "Status hinzugefügt: Bauantrag eingereicht", doc.Changelog[0].Note)
	assert.Equal(t, "Gespeichert", app.StatusBar().Message())
}

func TestApp_AddAction(t *testing.T) {
	app, portal := newTestApp(t)
	app.Update(tea.KeyMsg{Type: tea.KeyTab})

	app.Update(runeKey("a"))
	require.True(t, app.FormOpen())
	app.form.SetValue(0, "Mietvertrag prüfen")
	app.form.SetValue(1, "Merle")
	app.form.SetValue(2, "2024-03-15")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, app, cmd)

	item := portal.Doc.NextActions[0]
	assert.Equal(t, "Mietvertrag prüfen", item.Text)
	require.True(t, item.HasOwner())
	assert.Equal(t, "Merle", *item.Owner)
	require.True(t, item.HasDue())
	assert.Equal(t, "2024-03-15", *item.Due)
	assert.Equal(t, messages.SectionActions, app.Section())
}

func TestApp_AddDocument(t *testing.T) {
	app, portal := newTestApp(t)
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app.Update(tea.KeyMsg{Type: tea.KeyTab})

	app.Update(runeKey("a"))
	require.True(t, app.FormOpen())
	app.form.SetValue(0, "Grundriss")
	app.form.SetValue(1, "https://example.org/grundriss.pdf")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, app, cmd)

	ref := portal.Doc.Documents[0]
	assert.Equal(t, "Grundriss", ref.Title)
	assert.Equal(t, domain.DefaultDocumentType, ref.Type)
	assert.Equal(t, "2024-03-01", ref.Date)
	assert.Nil(t, ref.Notes)
}

func TestApp_Submit_MissingRequiredField(t *testing.T) {
	app, portal := newTestApp(t)
	before := portal.Doc.Stats()

	app.Update(runeKey("a"))
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, app.FormOpen())
	assert.Equal(t, status.StateError, app.StatusBar().State())
	assert.Contains(t, app.StatusBar().Message(), "Titel")
	assert.Equal(t, before, portal.Doc.Stats())
}

func TestApp_Submit_InvalidDate(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(runeKey("a"))
	app.form.SetValue(0, "Titel")
	app.form.SetValue(3, "01.03.2024")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, app.FormOpen())
	assert.Equal(t, status.StateError, app.StatusBar().State())
}

func TestApp_CancelForm(t *testing.T) {
	app, portal := newTestApp(t)
	before := portal.Doc.Stats()

	app.Update(runeKey("a"))
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, app.FormOpen())
	assert.Equal(t, status.StateReady, app.StatusBar().State())
	assert.Equal(t, before, portal.Doc.Stats())
	assert.Equal(t, 0, portal.LoadCalls)
}

func TestApp_FormSwallowsShortcuts(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(runeKey("a"))

	app.Update(runeKey("q"))

	assert.True(t, app.FormOpen())
}

func TestApp_AddBlockedWhenReadOnly(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(runeKey("e"))

	app.Update(runeKey("a"))

	assert.False(t, app.FormOpen())
	assert.Equal(t, status.StateError, app.StatusBar().State())
	assert.Equal(t, errEditModeOff.Error(), app.StatusBar().Message())
}

func TestApp_AddBlockedOnChangelog(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, messages.SectionChangelog, app.Section())

	app.Update(runeKey("a"))

	assert.False(t, app.FormOpen())
	assert.Equal(t, status.StateNotice, app.StatusBar().State())
}

func TestApp_EditModeTurnedOffWhileFormOpen(t *testing.T) {
	app, portal := newTestApp(t)
	before := portal.Doc.Stats()

	app.Update(runeKey("a"))
	app.form.SetValue(0, "Spät")
	app.editMode = false
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, app, cmd)

	assert.Equal(t, before, portal.Doc.Stats())
	assert.Equal(t, status.StateError, app.StatusBar().State())
}

func TestApp_Export(t *testing.T) {
	portal := newMockPortal()
	portal.ExportData = []byte("{\n  \"siteTitle\": \"x\"\n}\n")
	ports := NewPorts(portal)
	ports.ExportDir = filepath.Join(t.TempDir(), "exports")
	app, err := NewApp(ports)
	require.NoError(t, err)

	_, cmd := app.Update(runeKey("x"))
	require.NotNil(t, cmd)
	msg := cmd()

	exported, ok := msg.(messages.Exported)
	require.True(t, ok)
	require.NoError(t, exported.Err)
	assert.Equal(t, filepath.Join(ports.ExportDir, "friesencafe-content-2024-03-01.json"), exported.Path)

	data, err := os.ReadFile(exported.Path)
	require.NoError(t, err)
	assert.Equal(t, portal.ExportData, data)

	app.Update(msg)
	assert.Contains(t, app.StatusBar().Message(), exported.Path)
}

func TestApp_ExportFailure(t *testing.T) {
	portal := newMockPortal()
	portal.ExportErr = errors.New("encode failed")
	app, err := NewApp(NewPorts(portal))
	require.NoError(t, err)

	_, cmd := app.Update(runeKey("x"))
	runCmd(t, app, cmd)

	assert.Equal(t, status.StateError, app.StatusBar().State())
	assert.ErrorIs(t, app.Err(), portal.ExportErr)
}

func TestApp_Reload(t *testing.T) {
	app, portal := newTestApp(t)

	_, cmd := app.Update(runeKey("r"))
	runCmd(t, app, cmd)

	assert.Equal(t, 1, portal.LoadCalls)
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)
	testErr := errors.New("slot unreachable")

	app.Update(messages.ErrorOccurred{Err: testErr})

	assert.Equal(t, testErr, app.Err())
	assert.Equal(t, "slot unreachable", app.StatusBar().Message())
}

func TestApp_View_ShowsSections(t *testing.T) {
	app, _ := newTestApp(t)

	view := app.View()

	assert.Contains(t, view, "Status (1)")
	assert.Contains(t, view, "Nächste Schritte (2)")
	assert.Contains(t, view, "Dokumente (1)")
	assert.Contains(t, view, "Kickoff der Status")
	assert.Contains(t, view, "Zuletzt aktualisiert")
}

func TestApp_View_Form(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(runeKey("a"))

	view := app.View()

	assert.Contains(t, view, "Neu: Status")
	assert.Contains(t, view, "Titel")
}
