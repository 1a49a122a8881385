package mcp

import (
	"context"
	"time"

	"github.com/friesencafe/statusportal/internal/core/domain"
	"github.com/friesencafe/statusportal/internal/core/ports/driving"
)

var testNow = time.Date(2024, 5, 2, 14, 0, 0, 0, time.UTC)

// mockPortalService is a mock implementation of driving.PortalService.
type mockPortalService struct {
	doc       domain.PortalDocument
	exportErr error

	statuses  []domain.StatusEntry
	actions   []domain.ActionItem
	documents []domain.DocumentRef
	editModes []bool
}

var _ driving.PortalService = (*mockPortalService)(nil)

func newMockPortal() *mockPortalService {
	return &mockPortalService{doc: domain.SeedDocument(testNow)}
}

func (m *mockPortalService) Load(_ context.Context) domain.PortalDocument {
	return m.doc.Clone()
}

func (m *mockPortalService) Current() domain.PortalDocument {
	return m.doc.Clone()
}

func (m *mockPortalService) AppendStatus(
	_ context.Context, entry domain.StatusEntry, editMode bool,
) (domain.PortalDocument, bool) {
	m.editModes = append(m.editModes, editMode)
	if !editMode {
		return m.doc.Clone(), false
	}
	m.statuses = append(m.statuses, entry)
	m.doc.StatusEntries = append([]domain.StatusEntry{entry}, m.doc.StatusEntries...)
	m.touch()
	return m.doc.Clone(), true
}

func (m *mockPortalService) AppendAction(
	_ context.Context, item domain.ActionItem, editMode bool,
) (domain.PortalDocument, bool) {
	m.editModes = append(m.editModes, editMode)
	if !editMode {
		return m.doc.Clone(), false
	}
	m.actions = append(m.actions, item)
	m.doc.NextActions = append([]domain.ActionItem{item}, m.doc.NextActions...)
	m.touch()
	return m.doc.Clone(), true
}

func (m *mockPortalService) AppendDocument(
	_ context.Context, ref domain.DocumentRef, editMode bool,
) (domain.PortalDocument, bool) {
	m.editModes = append(m.editModes, editMode)
	if !editMode {
		return m.doc.Clone(), false
	}
	m.documents = append(m.documents, ref)
	m.doc.Documents = append([]domain.DocumentRef{ref}, m.doc.Documents...)
	m.touch()
	return m.doc.Clone(), true
}

func (m *mockPortalService) ExportSnapshot() ([]byte, error) {
	if m.exportErr != nil {
		return nil, m.exportErr
	}
	return []byte("{\n  \"siteTitle\": \"" + m.doc.SiteTitle + "\"\n}\n"), nil
}

func (m *mockPortalService) ExportFilename() string {
	return "friesencafe-content-2024-05-02.json"
}

func (m *mockPortalService) Reset(_ context.Context) error {
	return nil
}

func (m *mockPortalService) Stats() domain.PortalStats {
	return m.doc.Stats()
}

func (m *mockPortalService) touch() {
	ts := domain.FormatTimestamp(testNow.Add(time.Minute))
	m.doc.Changelog = append([]domain.ChangeRecord{{Timestamp: ts, Note: "added"}}, m.doc.Changelog...)
	m.doc.LastUpdatedTimestamp = ts
}
