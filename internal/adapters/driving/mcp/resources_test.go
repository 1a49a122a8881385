package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocumentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns export json", func(t *testing.T) {
		server := newTestServer(t, newMockPortal(), true)

		result, err := server.handleDocumentResource(ctx, makeReadResourceRequest("portal://document"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "portal://document", result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "Friesen")
	})

	t.Run("unknown uri is not found", func(t *testing.T) {
		server := newTestServer(t, newMockPortal(), true)

		result, err := server.handleDocumentResource(ctx, makeReadResourceRequest("portal://other"))

		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("encode failure is wrapped", func(t *testing.T) {
		portal := newMockPortal()
		portal.exportErr = errors.New("boom")
		server := newTestServer(t, portal, true)

		_, err := server.handleDocumentResource(ctx, makeReadResourceRequest("portal://document"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "encoding portal document")
	})
}
