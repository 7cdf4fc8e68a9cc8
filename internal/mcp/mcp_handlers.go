package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cosmodesk/taskpulse/core"
	"github.com/cosmodesk/taskpulse/internal/contract"
	"github.com/cosmodesk/taskpulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.ItemStore
}

func (h *toolHandler) handleGetRedFlags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("project", ""); p != "" {
		cfg.Project = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	flags, err := core.BuildRedFlagReport(ctx, h.store, cfg.Project, time.Now().UTC())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("red flag scan failed: %v", err)), nil
	}
	if len(flags) > cfg.ResultLimit {
		flags = flags[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(flags, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetFocusQueue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	assignee := request.GetString("assignee", "")
	if assignee == "" {
		return mcp.NewToolResultError("assignee is required"), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	tasks, err := core.BuildFocusQueueReport(ctx, h.store, assignee, time.Now().UTC())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("focus queue build failed: %v", err)), nil
	}
	if len(tasks) > cfg.ResultLimit {
		tasks = tasks[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetItemRisk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	itemID := request.GetString("item_id", "")
	if itemID == "" {
		return mcp.NewToolResultError("item_id is required"), nil
	}

	item, risk, err := core.BuildItemRisk(ctx, h.store, itemID, time.Now().UTC())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("risk assessment failed: %v", err)), nil
	}

	result := struct {
		Item schema.WorkItem     `json:"item"`
		Risk schema.DeadlineRisk `json:"risk"`
	}{Item: item, Risk: risk}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
