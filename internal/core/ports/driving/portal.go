package driving

import (
	"context"

	"github.com/friesencafe/statusportal/internal/core/domain"
)

// PortalService owns the portal document and keeps the durable slot in sync.
//
// Append operations never fail: a closed edit gate or an empty required
// field leaves the document untouched and reports accepted == false.
type PortalService interface {
	// Load reads the durable slot and makes it the current document.
	// Absent or malformed content yields the seed document.
	Load(ctx context.Context) domain.PortalDocument

	// Current returns a copy of the in-memory document.
	Current() domain.PortalDocument

	// AppendStatus prepends a status entry and a changelog row.
	AppendStatus(ctx context.Context, entry domain.StatusEntry, editMode bool) (domain.PortalDocument, bool)

	// AppendAction prepends an action item and a changelog row.
	AppendAction(ctx context.Context, item domain.ActionItem, editMode bool) (domain.PortalDocument, bool)

	// AppendDocument prepends a document reference and a changelog row.
	AppendDocument(ctx context.Context, ref domain.DocumentRef, editMode bool) (domain.PortalDocument, bool)

	// ExportSnapshot encodes the current document as indented JSON.
	ExportSnapshot() ([]byte, error)

	// ExportFilename returns the download name for today's export.
	ExportFilename() string

	// Reset clears the durable slot. The in-memory document is unchanged
	// until the next Load.
	Reset(ctx context.Context) error

	// Stats returns the section sizes of the current document.
	Stats() domain.PortalStats
}
