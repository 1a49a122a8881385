// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// status portal. It lets assistants read the portal and append entries.
package mcp

import "errors"

// ErrMissingPortalService is returned when the portal service is not provided.
var ErrMissingPortalService = errors.New("mcp: portal service is required")

// errEditModeOff is the message returned for appends the edit gate rejected.
const errEditModeOff = "edit mode is off; the entry was not added"
