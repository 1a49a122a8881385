package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/friesencafe/statusportal/internal/core/domain"
)

// EmptyInput is the input schema for tools without arguments.
type EmptyInput struct{}

// AddStatusInput is the input schema for the add_status tool.
type AddStatusInput struct {
	Title  string   `json:"title" jsonschema:"headline of the status update"`
	Body   string   `json:"body,omitempty" jsonschema:"details of the update"`
	Labels []string `json:"labels,omitempty" jsonschema:"short tags such as Info or Behörde"`
	Date   string   `json:"date,omitempty" jsonschema:"calendar date YYYY-MM-DD (default today)"`
}

// AddActionInput is the input schema for the add_action tool.
type AddActionInput struct {
	Text  string `json:"text" jsonschema:"what needs to be done"`
	Owner string `json:"owner,omitempty" jsonschema:"who is responsible"`
	Due   string `json:"due,omitempty" jsonschema:"due date YYYY-MM-DD"`
}

// AddDocumentInput is the input schema for the add_document tool.
type AddDocumentInput struct {
	Title string `json:"title" jsonschema:"title of the document"`
	URL   string `json:"url" jsonschema:"link to the document"`
	Type  string `json:"type,omitempty" jsonschema:"document type (default Protokoll)"`
	Notes string `json:"notes,omitempty" jsonschema:"free-form notes"`
	Date  string `json:"date,omitempty" jsonschema:"calendar date YYYY-MM-DD (default today)"`
}

// AddOutput is the output schema for the add tools.
type AddOutput struct {
	Accepted    bool               `json:"accepted"`
	Message     string             `json:"message,omitempty"`
	LastUpdated string             `json:"last_updated"`
	Stats       domain.PortalStats `json:"stats"`
}

// PortalOutput is the output schema for the get_portal tool.
type PortalOutput struct {
	Document domain.PortalDocument `json:"document"`
	Stats    domain.PortalStats    `json:"stats"`
}

// ExportOutput is the output schema for the export_portal tool.
type ExportOutput struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_portal",
		Description: "Return the current portal document with section counts",
	}, s.handleGetPortal)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_status",
		Description: "Prepend a status update to the portal",
	}, s.handleAddStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_action",
		Description: "Prepend a next action to the portal",
	}, s.handleAddAction)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_document",
		Description: "Attach a document reference to the portal",
	}, s.handleAddDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_portal",
		Description: "Export the portal document as indented JSON",
	}, s.handleExportPortal)
}

// handleGetPortal handles the get_portal tool invocation.
func (s *Server) handleGetPortal(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, PortalOutput, error) {
	doc := s.ports.Portal.Current()
	return nil, PortalOutput{Document: doc, Stats: doc.Stats()}, nil
}

// handleAddStatus handles the add_status tool invocation.
func (s *Server) handleAddStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddStatusInput,
) (*mcp.CallToolResult, AddOutput, error) {
	entry, err := domain.NewStatusEntry(input.Date, input.Title, input.Body, input.Labels, s.now())
	if err != nil {
		return nil, AddOutput{}, err
	}
	return nil, addOutput(s.ports.Portal.AppendStatus(ctx, entry, s.ports.EditMode)), nil
}

// handleAddAction handles the add_action tool invocation.
func (s *Server) handleAddAction(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddActionInput,
) (*mcp.CallToolResult, AddOutput, error) {
	item, err := domain.NewActionItem(input.Text, input.Owner, input.Due)
	if err != nil {
		return nil, AddOutput{}, err
	}
	return nil, addOutput(s.ports.Portal.AppendAction(ctx, item, s.ports.EditMode)), nil
}

// handleAddDocument handles the add_document tool invocation.
func (s *Server) handleAddDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddDocumentInput,
) (*mcp.CallToolResult, AddOutput, error) {
	ref, err := domain.NewDocumentRef(input.Date, input.Title, input.Type, input.URL, input.Notes, s.now())
	if err != nil {
		return nil, AddOutput{}, err
	}
	return nil, addOutput(s.ports.Portal.AppendDocument(ctx, ref, s.ports.EditMode)), nil
}

// handleExportPortal handles the export_portal tool invocation.
func (s *Server) handleExportPortal(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	data, err := s.ports.Portal.ExportSnapshot()
	if err != nil {
		return nil, ExportOutput{}, err
	}
	return nil, ExportOutput{
		Filename: s.ports.Portal.ExportFilename(),
		Content:  string(data),
	}, nil
}

func addOutput(doc domain.PortalDocument, accepted bool) AddOutput {
	out := AddOutput{
		Accepted:    accepted,
		LastUpdated: doc.LastUpdatedTimestamp,
		Stats:       doc.Stats(),
	}
	if !accepted {
		out.Message = errEditModeOff
	}
	return out
}
