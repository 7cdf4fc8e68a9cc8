// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/cosmodesk/taskpulse/schema"
)

// ItemStore defines the read operations the scoring engines need from
// the project-management database. Implementations map rows into the
// typed schema values at this boundary; nothing beyond it sees raw
// database values.
type ItemStore interface {
	// --- Report-wide reads ---

	// ListOpenWorkItems returns all items that are not done, optionally
	// filtered to one project (empty project means all projects).
	ListOpenWorkItems(ctx context.Context, project string) ([]schema.WorkItem, error)

	// ListWorkItemsByAssignee returns all open items owned by one user.
	ListWorkItemsByAssignee(ctx context.Context, assignee string) ([]schema.WorkItem, error)

	// ListPendingApprovals returns task requests awaiting review,
	// optionally filtered to one project.
	ListPendingApprovals(ctx context.Context, project string) ([]schema.ApprovalRequest, error)

	// --- Per-item reads ---

	// GetWorkItem returns a single item by ID.
	GetWorkItem(ctx context.Context, id string) (schema.WorkItem, error)

	// ListWorkLogs returns all logged effort entries for an item.
	ListWorkLogs(ctx context.Context, itemID string) ([]schema.WorkLog, error)

	// ListSiblingStatuses returns the statuses of items sharing the
	// given item's parent, excluding the item itself.
	ListSiblingStatuses(ctx context.Context, itemID string) ([]schema.SiblingStatus, error)

	// ListBlockers returns the upstream dependencies of an item.
	ListBlockers(ctx context.Context, itemID string) ([]schema.BlockerRef, error)

	// GetStatus returns status information about the store.
	GetStatus() (StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreStatus reports health information about a store backend.
type StoreStatus struct {
	Backend   schema.DatabaseBackend `json:"backend"`
	Location  string                 `json:"location"`
	ItemCount int                    `json:"item_count"`
	LogCount  int                    `json:"log_count"`
}
