package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/friesencafe/statusportal/internal/core/domain"
	"github.com/friesencafe/statusportal/internal/core/ports/driven"
	"github.com/friesencafe/statusportal/internal/core/ports/driving"
	"github.com/friesencafe/statusportal/internal/logger"
)

// Ensure PortalStore implements the interface.
var _ driving.PortalService = (*PortalStore)(nil)

// Changelog notes written for each accepted append.
const (
	noteStatusAdded   = "Status hinzugefügt: %s"
	noteActionAdded   = "Aufgabe hinzugefügt: %s"
	noteDocumentAdded = "Dokument angehängt: %s"
)

// exportPrefix names downloaded snapshots: friesencafe-content-YYYY-MM-DD.json.
const exportPrefix = "friesencafe-content-"

// PortalStore holds the current portal document and mirrors every accepted
// append to the durable slot before returning.
//
// Slot write failures are logged and swallowed: the in-memory document
// stays authoritative for the session.
type PortalStore struct {
	mu   sync.Mutex
	slot driven.SlotStore
	key  string
	now  func() time.Time
	seed domain.PortalDocument
	doc  domain.PortalDocument
}

// NewPortalStore creates a portal store backed by slot.
// An empty key selects domain.DefaultSlotKey; a nil clock selects time.Now.
// The seed document is fixed at construction time. The store holds the
// seed until Load is called.
func NewPortalStore(slot driven.SlotStore, key string, clock func() time.Time) *PortalStore {
	if key == "" {
		key = domain.DefaultSlotKey
	}
	if clock == nil {
		clock = time.Now
	}
	seed := domain.SeedDocument(clock())
	return &PortalStore{
		slot: slot,
		key:  key,
		now:  clock,
		seed: seed,
		doc:  seed.Clone(),
	}
}

// Seed returns a copy of the document used when the slot holds nothing valid.
func (s *PortalStore) Seed() domain.PortalDocument {
	return s.seed.Clone()
}

// SlotKey returns the durable slot key.
func (s *PortalStore) SlotKey() string {
	return s.key
}

// Load reads the durable slot. An empty or malformed slot degrades to the
// seed document, which is then mirrored to the slot. A slot that cannot be
// read at all also yields the seed, but the slot is left untouched.
func (s *PortalStore) Load(ctx context.Context) domain.PortalDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("slot %q is empty, starting from seed document", s.key)
		doc = s.seed.Clone()
		s.persist(ctx, doc)
	case errors.Is(err, domain.ErrMalformedDocument):
		logger.Warn("slot %q is malformed, starting from seed document: %v", s.key, err)
		doc = s.seed.Clone()
		s.persist(ctx, doc)
	default:
		logger.Warn("slot %q unreadable, showing seed document without writing: %v", s.key, err)
		doc = s.seed.Clone()
	}

	s.doc = doc
	return doc.Clone()
}

// Current returns a copy of the in-memory document.
func (s *PortalStore) Current() domain.PortalDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// AppendStatus prepends entry to the status entries.
func (s *PortalStore) AppendStatus(
	ctx context.Context,
	entry domain.StatusEntry,
	editMode bool,
) (domain.PortalDocument, bool) {
	if !editMode || entry.Title == "" {
		return s.Current(), false
	}
	entry.Labels = slices.Clone(entry.Labels)

	return s.apply(ctx, fmt.Sprintf(noteStatusAdded, entry.Title), func(d *domain.PortalDocument) {
		d.StatusEntries = append([]domain.StatusEntry{entry}, d.StatusEntries...)
	}), true
}

// AppendAction prepends item to the next actions.
func (s *PortalStore) AppendAction(
	ctx context.Context,
	item domain.ActionItem,
	editMode bool,
) (domain.PortalDocument, bool) {
	if !editMode || item.Text == "" {
		return s.Current(), false
	}
	item.Owner = copyString(item.Owner)
	item.Due = copyString(item.Due)

	return s.apply(ctx, fmt.Sprintf(noteActionAdded, item.Text), func(d *domain.PortalDocument) {
		d.NextActions = append([]domain.ActionItem{item}, d.NextActions...)
	}), true
}

// AppendDocument prepends ref to the documents.
func (s *PortalStore) AppendDocument(
	ctx context.Context,
	ref domain.DocumentRef,
	editMode bool,
) (domain.PortalDocument, bool) {
	if !editMode || ref.Title == "" || ref.URL == "" {
		return s.Current(), false
	}
	ref.Notes = copyString(ref.Notes)

	return s.apply(ctx, fmt.Sprintf(noteDocumentAdded, ref.Title), func(d *domain.PortalDocument) {
		d.Documents = append([]domain.DocumentRef{ref}, d.Documents...)
	}), true
}

// ExportSnapshot encodes the current document for download.
func (s *PortalStore) ExportSnapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return EncodeSnapshot(s.doc)
}

// ExportFilename returns the file name for an export taken now.
func (s *PortalStore) ExportFilename() string {
	return exportPrefix + domain.FormatDate(s.now()) + ".json"
}

// Reset clears the durable slot. The caller reloads afterwards.
func (s *PortalStore) Reset(ctx context.Context) error {
	if s.slot == nil {
		return nil
	}
	if err := s.slot.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clearing slot %q: %w", s.key, err)
	}
	logger.Info("slot %q cleared", s.key)
	return nil
}

// Stats returns the section sizes of the current document.
func (s *PortalStore) Stats() domain.PortalStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Stats()
}

// apply runs mutate on a copy of the document, records the change,
// persists and swaps the copy in.
func (s *PortalStore) apply(
	ctx context.Context,
	note string,
	mutate func(*domain.PortalDocument),
) domain.PortalDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := domain.FormatTimestamp(s.now())
	next := s.doc.Clone()
	mutate(&next)
	next.Changelog = append([]domain.ChangeRecord{{Timestamp: ts, Note: note}}, next.Changelog...)
	next.LastUpdatedTimestamp = ts

	s.persist(ctx, next)
	s.doc = next
	logger.Debug("%s", note)
	return next.Clone()
}

// read fetches and decodes the slot (caller must hold lock).
func (s *PortalStore) read(ctx context.Context) (domain.PortalDocument, error) {
	if s.slot == nil {
		return domain.PortalDocument{}, domain.ErrNotFound
	}
	data, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return domain.PortalDocument{}, err
	}
	return DecodeSnapshot(data)
}

// persist writes doc to the slot, swallowing failures (caller must hold lock).
func (s *PortalStore) persist(ctx context.Context, doc domain.PortalDocument) {
	if s.slot == nil {
		return
	}
	data, err := encodeCompact(doc)
	if err != nil {
		logger.Warn("encoding slot %q: %v", s.key, err)
		return
	}
	if err := s.slot.Put(ctx, s.key, data); err != nil {
		logger.Warn("writing slot %q failed, keeping in-memory document: %v", s.key, err)
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
