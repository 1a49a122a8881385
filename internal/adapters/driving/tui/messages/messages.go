// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/friesencafe/statusportal/internal/core/domain"
)

// Section identifies one of the board sections.
type Section int

const (
	// SectionStatus lists status updates.
	SectionStatus Section = iota
	// SectionActions lists next actions.
	SectionActions
	// SectionDocuments lists document references.
	SectionDocuments
	// SectionChangelog lists change records.
	SectionChangelog
)

// Sections returns all sections in display order.
func Sections() []Section {
	return []Section{SectionStatus, SectionActions, SectionDocuments, SectionChangelog}
}

// Title returns the heading shown for the section.
func (s Section) Title() string {
	switch s {
	case SectionStatus:
		return "Status"
	case SectionActions:
		return "Nächste Schritte"
	case SectionDocuments:
		return "Dokumente"
	case SectionChangelog:
		return "Änderungsprotokoll"
	default:
		return "Unbekannt"
	}
}

// Editable reports whether entries can be added to the section.
func (s Section) Editable() bool {
	return s != SectionChangelog
}

// PortalLoaded carries a freshly loaded document.
// External marks a reload triggered by the slot watcher.
type PortalLoaded struct {
	Document domain.PortalDocument
	External bool
}

// SlotChanged is sent when another session rewrote the stored portal.
type SlotChanged struct{}

// EntryAdded reports the outcome of an append.
type EntryAdded struct {
	Section  Section
	Document domain.PortalDocument
	Accepted bool
}

// Exported reports the outcome of an export.
type Exported struct {
	Path string
	Err  error
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
