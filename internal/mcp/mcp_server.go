// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/cosmodesk/taskpulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Taskpulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.ItemStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Taskpulse Risk Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: get_red_flags ---
	s.AddTool(mcp.NewTool("get_red_flags",
		mcp.WithDescription("Scan open work items for red flags: deadline risks, effort overruns, blocked, stale and unassigned items, and aging approval requests."),
		mcp.WithString("project", mcp.Description("Restrict the scan to one project (all projects if not specified).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of flags returned.")),
	), h.handleGetRedFlags)

	// --- 2. Tool: get_focus_queue ---
	s.AddTool(mcp.NewTool("get_focus_queue",
		mcp.WithDescription("Build a ranked daily focus queue for one assignee, most urgent work first."),
		mcp.WithString("assignee", mcp.Description("The user whose open items should be ranked."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of tasks returned.")),
	), h.handleGetFocusQueue)

	// --- 3. Tool: get_item_risk ---
	s.AddTool(mcp.NewTool("get_item_risk",
		mcp.WithDescription("Get the full deadline risk assessment for a single work item."),
		mcp.WithString("item_id", mcp.Description("The work item identifier."), mcp.Required()),
	), h.handleGetItemRisk)

	return s
}

// StartMCPServer starts the Taskpulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.ItemStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
