package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for portal resources.
	uriScheme = "portal://"

	documentURI = uriScheme + "document"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         documentURI,
		Name:        "document",
		Description: "The current portal document in export format",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

// handleDocumentResource returns the portal document as indented JSON.
func (s *Server) handleDocumentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if req.Params.URI != documentURI {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := s.ports.Portal.ExportSnapshot()
	if err != nil {
		return nil, fmt.Errorf("encoding portal document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
