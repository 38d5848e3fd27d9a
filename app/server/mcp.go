package server

import (
	"context"
	"encoding/json"

	"finplay/app/catalog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// newCatalogServer exposes the read-only catalog to external agents as
// MCP tools.
func newCatalogServer(store *catalog.Store) *server.MCPServer {
	s := server.NewMCPServer(
		"finplay-catalog",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	listTool := mcp.NewTool("catalog_list",
		mcp.WithDescription("List all services of the FinPlay catalog."),
	)
	s.AddTool(listTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := json.Marshal(store.Entries())
		if err != nil {
			return nil, err
		}

		return mcp.NewToolResultText(string(data)), nil
	})

	lookupTool := mcp.NewTool("catalog_lookup",
		mcp.WithDescription("Look up one catalog service by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Service id, e.g. pedreiro"),
		),
	)
	s.AddTool(lookupTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entry, ok := store.Lookup(id)
		if !ok {
			return mcp.NewToolResultError("unknown service id: " + id), nil
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}

		return mcp.NewToolResultText(string(data)), nil
	})

	subItemsTool := mcp.NewTool("catalog_subitems",
		mcp.WithDescription("List the sub-services of one catalog service."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Service id, e.g. cabeleireira"),
		),
	)
	s.AddTool(subItemsTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(store.SubItemsOf(id))
		if err != nil {
			return nil, err
		}

		return mcp.NewToolResultText(string(data)), nil
	})

	return s
}
