package mcp

import (
	"github.com/friesencafe/statusportal/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Portal owns the document. Required.
	Portal driving.PortalService

	// EditMode gates the add tools. With it off they report
	// accepted == false and leave the document untouched.
	EditMode bool
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Portal == nil {
		return ErrMissingPortalService
	}
	return nil
}
