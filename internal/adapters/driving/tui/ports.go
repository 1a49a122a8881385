// Package tui provides the interactive status board.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/friesencafe/statusportal/internal/core/domain"
	"github.com/friesencafe/statusportal/internal/core/ports/driven"
	"github.com/friesencafe/statusportal/internal/core/ports/driving"
)

// Ports aggregates the services and options the board needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Portal owns the document. Required.
	Portal driving.PortalService

	// Watcher reports changes made by other sessions. Optional.
	Watcher driven.SlotWatcher

	// SlotKey is the slot the watcher observes.
	SlotKey string

	// EditMode is the initial state of the edit gate.
	EditMode bool

	// ExportDir is where exports are written.
	ExportDir string
}

// NewPorts creates a Ports aggregate with defaults for the optional fields.
func NewPorts(portal driving.PortalService) *Ports {
	return &Ports{
		Portal:    portal,
		SlotKey:   domain.DefaultSlotKey,
		EditMode:  true,
		ExportDir: ".",
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Portal == nil {
		return ErrMissingPortalService
	}
	return nil
}
