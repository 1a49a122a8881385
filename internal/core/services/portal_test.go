package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/friesencafe/statusportal/internal/adapters/driven/storage/memory"
	"github.com/friesencafe/statusportal/internal/core/domain"
	"github.com/friesencafe/statusportal/internal/logger"
)

var startTime = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	now := startTime
	return func() time.Time {
		t := now
		now = now.Add(time.Second)
		return t
	}
}

func newTestPortal(t *testing.T) (*PortalStore, *memory.SlotStore) {
	t.Helper()
	slot := memory.NewSlotStore()
	store := NewPortalStore(slot, "", steppingClock())
	store.Load(context.Background())
	return store, slot
}

func testStatus(title string) domain.StatusEntry {
	return domain.StatusEntry{Date: "2024-01-01", Title: title, Body: "", Labels: []string{}}
}

func strPtr(s string) *string { return &s }

func TestNewPortalStore_Defaults(t *testing.T) {
	store := NewPortalStore(memory.NewSlotStore(), "", nil)

	assert.Equal(t, domain.DefaultSlotKey, store.SlotKey())
	assert.Equal(t, store.Seed(), store.Current(), "holds the seed before Load")
}

func TestPortalStore_Load_EmptySlotReturnsSeed(t *testing.T) {
	slot := memory.NewSlotStore()
	store := NewPortalStore(slot, "", steppingClock())

	doc := store.Load(context.Background())

	assert.Equal(t, store.Seed(), doc)
	assert.Equal(t, 1, slot.Puts(), "seed is mirrored to the slot")
}

func TestPortalStore_Load_MalformedSlotReturnsSeed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{{{"},
		{"json null", "null"},
		{"json array", "[1,2,3]"},
		{"json string", `"hello"`},
		{"empty object", "{}"},
		{"missing changelog", `{"siteTitle":"x","status":[],"nextActions":[],"documents":[]}`},
		{"mistyped sequence", `{"status":5,"nextActions":[],"documents":[],"changelog":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := memory.NewSlotStore()
			require.NoError(t, slot.Put(context.Background(), domain.DefaultSlotKey, []byte(tt.content)))

			var logs bytes.Buffer
			logger.SetOutput(&logs)
			defer logger.SetOutput(os.Stderr)

			store := NewPortalStore(slot, "", steppingClock())
			doc := store.Load(context.Background())

			assert.Equal(t, store.Seed(), doc)
			assert.Contains(t, logs.String(), "[WARN]")
		})
	}
}

func TestPortalStore_Load_UnreadableSlotReturnsSeed(t *testing.T) {
	slot := memory.NewSlotStore()
	ctx := context.Background()

	writer := NewPortalStore(slot, "", steppingClock())
	writer.Load(ctx)
	saved, ok := writer.AppendStatus(ctx, testStatus("Bleibt erhalten"), true)
	require.True(t, ok)
	stored, err := slot.Get(ctx, domain.DefaultSlotKey)
	require.NoError(t, err)
	putsBefore := slot.Puts()

	var logs bytes.Buffer
	logger.SetOutput(&logs)
	defer logger.SetOutput(os.Stderr)

	slot.FailReads(errors.New("storage unavailable"))
	store := NewPortalStore(slot, "", steppingClock())
	assert.Equal(t, store.Seed(), store.Load(ctx))
	assert.Contains(t, logs.String(), "storage unavailable")
	assert.Equal(t, putsBefore, slot.Puts(), "unreadable slot is not overwritten")

	slot.FailReads(nil)
	after, err := slot.Get(ctx, domain.DefaultSlotKey)
	require.NoError(t, err)
	assert.Equal(t, stored, after)

	// Once the slot is readable again the saved document comes back.
	assert.Equal(t, saved, NewPortalStore(slot, "", steppingClock()).Load(ctx))
}

func TestPortalStore_Load_MalformedSlotIsReplaced(t *testing.T) {
	slot := memory.NewSlotStore()
	ctx := context.Background()
	require.NoError(t, slot.Put(ctx, domain.DefaultSlotKey, []byte("{{{")))

	var logs bytes.Buffer
	logger.SetOutput(&logs)
	defer logger.SetOutput(os.Stderr)

	store := NewPortalStore(slot, "", steppingClock())
	store.Load(ctx)

	data, err := slot.Get(ctx, domain.DefaultSlotKey)
	require.NoError(t, err)
	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, store.Seed(), decoded)
}

func TestPortalStore_Load_NilSlot(t *testing.T) {
	store := NewPortalStore(nil, "", steppingClock())

	doc := store.Load(context.Background())
	assert.Equal(t, store.Seed(), doc)

	_, ok := store.AppendStatus(context.Background(), testStatus("Ohne Speicher"), true)
	assert.True(t, ok)
	assert.NoError(t, store.Reset(context.Background()))
}

func TestPortalStore_Load_Idempotent(t *testing.T) {
	store, _ := newTestPortal(t)
	ctx := context.Background()

	store.AppendStatus(ctx, testStatus("Test"), true)

	first := store.Load(ctx)
	second := store.Load(ctx)
	assert.Equal(t, first, second)
}

func TestPortalStore_Load_RestoresPersistedDocument(t *testing.T) {
	slot := memory.NewSlotStore()
	ctx := context.Background()

	store := NewPortalStore(slot, "", steppingClock())
	store.Load(ctx)
	written, ok := store.AppendDocument(ctx, domain.DocumentRef{
		Date: "2024-01-02", Title: "Bescheid", Type: "Behörde", URL: "https://x", Notes: strPtr("eilig"),
	}, true)
	require.True(t, ok)

	// A second session against the same slot sees the written document.
	other := NewPortalStore(slot, "", func() time.Time { return startTime.Add(time.Hour) })
	assert.Equal(t, written, other.Load(ctx))
}

func TestPortalStore_AppendStatus_Scenario(t *testing.T) {
	store, _ := newTestPortal(t)
	require.Len(t, store.Current().StatusEntries, 1)

	doc, ok := store.AppendStatus(context.Background(), testStatus("Test"), true)

	require.True(t, ok)
	require.Len(t, doc.StatusEntries, 2)
	assert.Equal(t, "Test", doc.StatusEntries[0].Title)
	assert.Equal(t, "Status hinzugefügt: Test", doc.Changelog[0].Note)
}

func TestPortalStore_AppendStatus_Accepted(t *testing.T) {
	store, slot := newTestPortal(t)
	ctx := context.Background()
	before := store.Current()
	putsBefore := slot.Puts()

	entry := domain.StatusEntry{Date: "2024-01-05", Title: "Bauamt", Body: "Termin steht", Labels: []string{"Behörde"}}
	doc, ok := store.AppendStatus(ctx, entry, true)

	require.True(t, ok)
	assert.Len(t, doc.StatusEntries, len(before.StatusEntries)+1)
	assert.Len(t, doc.Changelog, len(before.Changelog)+1)
	assert.Equal(t, entry, doc.StatusEntries[0])
	assert.Equal(t, before.StatusEntries, doc.StatusEntries[1:])
	assert.Equal(t, before.Changelog, doc.Changelog[1:])

	assert.Equal(t, doc.Changelog[0].Timestamp, doc.LastUpdatedTimestamp)
	assert.NotEqual(t, before.LastUpdatedTimestamp, doc.LastUpdatedTimestamp)

	assert.Equal(t, putsBefore+1, slot.Puts())
	persisted, err := slot.Get(ctx, domain.DefaultSlotKey)
	require.NoError(t, err)
	decoded, err := DecodeSnapshot(persisted)
	require.NoError(t, err)
	assert.Equal(t, doc, decoded, "slot mirrors the returned document")
}

func TestPortalStore_AppendStatus_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		entry    domain.StatusEntry
		editMode bool
	}{
		{"empty title", testStatus(""), true},
		{"edit mode off", testStatus("Test"), false},
		{"empty title and edit mode off", testStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, slot := newTestPortal(t)
			before := store.Current()
			putsBefore := slot.Puts()

			doc, ok := store.AppendStatus(context.Background(), tt.entry, tt.editMode)

			assert.False(t, ok)
			assert.Equal(t, before, doc)
			assert.Equal(t, before, store.Current())
			assert.Equal(t, putsBefore, slot.Puts(), "rejected appends do not write")
		})
	}
}

func TestPortalStore_AppendStatus_WhitespaceTitleAccepted(t *testing.T) {
	store, slot := newTestPortal(t)
	putsBefore := slot.Puts()

	doc, ok := store.AppendStatus(context.Background(), testStatus("   "), true)

	require.True(t, ok)
	assert.Equal(t, "   ", doc.StatusEntries[0].Title)
	assert.Equal(t, "Status hinzugefügt:    ", doc.Changelog[0].Note)
	assert.Equal(t, putsBefore+1, slot.Puts())
}

func TestPortalStore_AppendStatus_NilLabelsRoundTrip(t *testing.T) {
	store, slot := newTestPortal(t)
	ctx := context.Background()

	entry := domain.StatusEntry{Date: "2024-01-05", Title: "Ohne Labels"}
	doc, ok := store.AppendStatus(ctx, entry, true)

	require.True(t, ok)
	assert.Equal(t, entry, doc.StatusEntries[0])
	assert.Equal(t, entry, store.Current().StatusEntries[0])

	persisted, err := slot.Get(ctx, domain.DefaultSlotKey)
	require.NoError(t, err)
	assert.Contains(t, string(persisted), `"labels":null`)
	decoded, err := DecodeSnapshot(persisted)
	require.NoError(t, err)
	assert.Equal(t, doc, decoded)
}

func TestPortalStore_AppendAction(t *testing.T) {
	store, _ := newTestPortal(t)
	ctx := context.Background()
	before := store.Current()

	item := domain.ActionItem{Text: "Mietvertrag prüfen", Owner: strPtr("Merle")}
	doc, ok := store.AppendAction(ctx, item, true)

	require.True(t, ok)
	require.Len(t, doc.NextActions, len(before.NextActions)+1)
	assert.Equal(t, item, doc.NextActions[0])
	assert.Equal(t, "Aufgabe hinzugefügt: Mietvertrag prüfen", doc.Changelog[0].Note)

	_, ok = store.AppendAction(ctx, domain.ActionItem{Text: ""}, true)
	assert.False(t, ok)
	_, ok = store.AppendAction(ctx, domain.ActionItem{Text: " "}, true)
	assert.True(t, ok, "only the empty string is rejected")
	_, ok = store.AppendAction(ctx, item, false)
	assert.False(t, ok)
	assert.Len(t, store.Current().NextActions, len(before.NextActions)+2)
}

func TestPortalStore_AppendDocument(t *testing.T) {
	store, _ := newTestPortal(t)
	ctx := context.Background()
	before := store.Current()

	ref := domain.DocumentRef{Date: "2024-01-01", Title: "Protokoll", Type: "Protokoll", URL: "https://x"}
	doc, ok := store.AppendDocument(ctx, ref, true)

	require.True(t, ok)
	require.Len(t, doc.Documents, len(before.Documents)+1)
	assert.Equal(t, ref, doc.Documents[0])
	assert.Equal(t, "Dokument angehängt: Protokoll", doc.Changelog[0].Note)
}

func TestPortalStore_AppendDocument_Rejected(t *testing.T) {
	tests := []struct {
		name string
		ref  domain.DocumentRef
	}{
		{"empty title", domain.DocumentRef{Title: "", URL: "https://x"}},
		{"empty url", domain.DocumentRef{Title: "Protokoll", URL: ""}},
		{"both empty", domain.DocumentRef{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestPortal(t)
			before := store.Current()

			doc, ok := store.AppendDocument(context.Background(), tt.ref, true)

			assert.False(t, ok)
			assert.Equal(t, before, doc)
		})
	}
}

func TestPortalStore_AppendOrderNewestFirst(t *testing.T) {
	store, _ := newTestPortal(t)
	ctx := context.Background()

	store.AppendStatus(ctx, testStatus("eins"), true)
	store.AppendAction(ctx, domain.ActionItem{Text: "zwei"}, true)
	doc, _ := store.AppendStatus(ctx, testStatus("drei"), true)

	assert.Equal(t, "drei", doc.StatusEntries[0].Title)
	assert.Equal(t, "eins", doc.StatusEntries[1].Title)
	assert.Equal(t, []string{
		"Status hinzugefügt: drei",
		"Aufgabe hinzugefügt: zwei",
		"Status hinzugefügt: eins",
	}, []string{doc.Changelog[0].Note, doc.Changelog[1].Note, doc.Changelog[2].Note})
}

func TestPortalStore_WriteFailureIsSwallowed(t *testing.T) {
	store, slot := newTestPortal(t)
	ctx := context.Background()

	var logs bytes.Buffer
	logger.SetOutput(&logs)
	defer logger.SetOutput(os.Stderr)

	slot.FailWrites(errors.New("quota exceeded"))
	doc, ok := store.AppendStatus(ctx, testStatus("Offline"), true)

	require.True(t, ok)
	assert.Equal(t, "Offline", doc.StatusEntries[0].Title)
	assert.Equal(t, doc, store.Current(), "in-memory document stays authoritative")
	assert.Contains(t, logs.String(), "quota exceeded")
}

func TestPortalStore_ReturnedDocumentsDoNotAlias(t *testing.T) {
	store, _ := newTestPortal(t)
	ctx := context.Background()

	entry := domain.StatusEntry{Title: "Labels", Labels: []string{"a"}}
	doc, _ := store.AppendStatus(ctx, entry, true)

	entry.Labels[0] = "mutated by caller"
	doc.StatusEntries[0].Labels[0] = "mutated by reader"
	doc.StatusEntries = nil

	current := store.Current()
	require.Len(t, current.StatusEntries, 2)
	assert.Equal(t, []string{"a"}, current.StatusEntries[0].Labels)
}

func TestPortalStore_ExportSnapshot_RoundTrip(t *testing.T) {
	store, _ := newTestPortal(t)
	ctx := context.Background()

	store.AppendStatus(ctx, testStatus("Test"), true)
	store.AppendAction(ctx, domain.ActionItem{Text: "Due", Due: strPtr("2024-02-01")}, true)
	store.AppendDocument(ctx, domain.DocumentRef{Title: "A & B <c>", Type: "Protokoll", URL: "https://x"}, true)
	current := store.Current()

	data, err := store.ExportSnapshot()
	require.NoError(t, err)

	parsed, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, current, parsed)
	assert.Equal(t, current, store.Current(), "export has no side effect")
}

func TestPortalStore_ExportFilename(t *testing.T) {
	store := NewPortalStore(nil, "", func() time.Time { return startTime })
	assert.Equal(t, "friesencafe-content-2024-01-01.json", store.ExportFilename())
}

func TestPortalStore_Reset(t *testing.T) {
	store, slot := newTestPortal(t)
	ctx := context.Background()

	store.AppendStatus(ctx, testStatus("Test"), true)
	withEntry := store.Current()

	require.NoError(t, store.Reset(ctx))

	_, err := slot.Get(ctx, domain.DefaultSlotKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, withEntry, store.Current(), "reset leaves memory alone")

	assert.Equal(t, store.Seed(), store.Load(ctx))
}

func TestPortalStore_Reset_Failure(t *testing.T) {
	slot := memory.NewSlotStore()
	store := NewPortalStore(slot, "custom", steppingClock())
	require.NoError(t, slot.Close())

	err := store.Reset(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreClosed)
	assert.Contains(t, err.Error(), `"custom"`)
}

func TestPortalStore_CustomSlotKey(t *testing.T) {
	slot := memory.NewSlotStore()
	ctx := context.Background()
	store := NewPortalStore(slot, "board_b", steppingClock())
	store.Load(ctx)

	_, err := slot.Get(ctx, "board_b")
	assert.NoError(t, err)
	_, err = slot.Get(ctx, domain.DefaultSlotKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPortalStore_Stats(t *testing.T) {
	store, _ := newTestPortal(t)
	store.AppendAction(context.Background(), domain.ActionItem{Text: "x"}, true)

	assert.Equal(t, domain.PortalStats{
		StatusEntries: 1,
		NextActions:   3,
		Documents:     1,
		Changelog:     2,
	}, store.Stats())
}
