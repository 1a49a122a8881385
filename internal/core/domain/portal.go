package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Layouts used for all dates and timestamps stored in a portal document.
const (
	// DateLayout is the calendar date layout (YYYY-MM-DD).
	DateLayout = "2006-01-02"

	// TimestampLayout is the ISO-8601 UTC layout with millisecond precision.
	TimestampLayout = "2006-01-02T15:04:05.000Z"

	// DefaultDocumentType is applied when a document reference has no type.
	DefaultDocumentType = "Protokoll"
)

// PortalDocument is the single root record of the status portal.
// All sequences are ordered newest first and only ever grow at the front.
//
// Field order is significant: it is the key order of the JSON encoding.
type PortalDocument struct {
	SiteTitle            string         `json:"siteTitle"`
	HeroTagline          string         `json:"heroTagline"`
	LastUpdatedTimestamp string         `json:"lastUpdatedISO"`
	StatusEntries        []StatusEntry  `json:"status"`
	NextActions          []ActionItem   `json:"nextActions"`
	Documents            []DocumentRef  `json:"documents"`
	Changelog            []ChangeRecord `json:"changelog"`
}

// StatusEntry is a dated project update.
// Nil Labels stay nil through Clone and encode as JSON null.
type StatusEntry struct {
	Date   string   `json:"date"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

// ActionItem is an open task on the board.
// Owner and Due are nil when absent.
type ActionItem struct {
	Text  string  `json:"text"`
	Owner *string `json:"owner"`
	Due   *string `json:"due"`
}

// DocumentRef links an external document (protocol, decision, upload).
type DocumentRef struct {
	Date  string  `json:"date"`
	Title string  `json:"title"`
	Type  string  `json:"type"`
	URL   string  `json:"url"`
	Notes *string `json:"notes"`
}

// ChangeRecord is one row of the changelog.
type ChangeRecord struct {
	Timestamp string `json:"ts"`
	Note      string `json:"note"`
}

// PortalStats summarises the size of each section of a document.
type PortalStats struct {
	StatusEntries int `json:"status"`
	NextActions   int `json:"nextActions"`
	Documents     int `json:"documents"`
	Changelog     int `json:"changelog"`
}

// FormatDate formats t as a calendar date in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatTimestamp formats t as an ISO-8601 UTC timestamp.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NewStatusEntry builds a status entry dated today unless date is given.
// Labels are trimmed and de-duplicated, keeping the first occurrence.
func NewStatusEntry(date, title, body string, labels []string, now time.Time) (StatusEntry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return StatusEntry{}, fmt.Errorf("%w: status title is required", ErrInvalidInput)
	}
	date, err := normaliseDate(date, now)
	if err != nil {
		return StatusEntry{}, err
	}
	return StatusEntry{
		Date:   date,
		Title:  title,
		Body:   strings.TrimSpace(body),
		Labels: uniqueLabels(labels),
	}, nil
}

// NewActionItem builds an action item. Empty owner or due are stored as absent.
func NewActionItem(text, owner, due string) (ActionItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ActionItem{}, fmt.Errorf("%w: action text is required", ErrInvalidInput)
	}
	item := ActionItem{
		Text:  text,
		Owner: optional(owner),
	}
	if d := strings.TrimSpace(due); d != "" {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return ActionItem{}, fmt.Errorf("%w: due date %q is not YYYY-MM-DD", ErrInvalidInput, d)
		}
		item.Due = &d
	}
	return item, nil
}

// NewDocumentRef builds a document reference dated today unless date is given.
func NewDocumentRef(date, title, docType, url, notes string, now time.Time) (DocumentRef, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if title == "" {
		return DocumentRef{}, fmt.Errorf("%w: document title is required", ErrInvalidInput)
	}
	if url == "" {
		return DocumentRef{}, fmt.Errorf("%w: document url is required", ErrInvalidInput)
	}
	date, err := normaliseDate(date, now)
	if err != nil {
		return DocumentRef{}, err
	}
	docType = strings.TrimSpace(docType)
	if docType == "" {
		docType = DefaultDocumentType
	}
	return DocumentRef{
		Date:  date,
		Title: title,
		Type:  docType,
		URL:   url,
		Notes: optional(notes),
	}, nil
}

// Clone returns a deep copy of the document.
func (d PortalDocument) Clone() PortalDocument {
	out := d
	out.StatusEntries = make([]StatusEntry, len(d.StatusEntries))
	for i, s := range d.StatusEntries {
		s.Labels = slices.Clone(s.Labels)
		out.StatusEntries[i] = s
	}
	out.NextActions = make([]ActionItem, len(d.NextActions))
	for i, a := range d.NextActions {
		a.Owner = cloneString(a.Owner)
		a.Due = cloneString(a.Due)
		out.NextActions[i] = a
	}
	out.Documents = make([]DocumentRef, len(d.Documents))
	for i, doc := range d.Documents {
		doc.Notes = cloneString(doc.Notes)
		out.Documents[i] = doc
	}
	out.Changelog = append([]ChangeRecord{}, d.Changelog...)
	return out
}

// Normalise replaces nil document sections with empty ones. Entry labels
// are left as decoded so a null label list survives a round trip.
func (d *PortalDocument) Normalise() {
	if d.StatusEntries == nil {
		d.StatusEntries = []StatusEntry{}
	}
	if d.NextActions == nil {
		d.NextActions = []ActionItem{}
	}
	if d.Documents == nil {
		d.Documents = []DocumentRef{}
	}
	if d.Changelog == nil {
		d.Changelog = []ChangeRecord{}
	}
}

// Stats returns the section sizes of the document.
func (d PortalDocument) Stats() PortalStats {
	return PortalStats{
		StatusEntries: len(d.StatusEntries),
		NextActions:   len(d.NextActions),
		Documents:     len(d.Documents),
		Changelog:     len(d.Changelog),
	}
}

// HasOwner reports whether the action item names an owner.
func (a ActionItem) HasOwner() bool {
	return a.Owner != nil && *a.Owner != ""
}

// HasDue reports whether the action item carries a due date.
func (a ActionItem) HasDue() bool {
	return a.Due != nil && *a.Due != ""
}

func normaliseDate(date string, now time.Time) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return FormatDate(now), nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidInput, date)
	}
	return date, nil
}

func uniqueLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
