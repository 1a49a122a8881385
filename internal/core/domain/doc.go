// Package domain defines the core business entities for the status portal.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PortalDocument: The single root record of the board
//   - StatusEntry, ActionItem, DocumentRef: Append-only board entries
//   - ChangeRecord: One changelog row per accepted append
//   - AppSettings: Storage, editing and export configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
