// Package schema defines the domain types and constants shared across
// the taskpulse engine: work items, work logs, derived risk and flag
// values, and the enumerations that classify them.
package schema

import "time"

// WorkItem is a single unit of trackable work (a subtask row).
// EstimatedHours and DueDate are nil when the source row has no value.
// An empty AssignedTo means the item is unassigned.
type WorkItem struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Project        string     `json:"project"`
	Status         ItemStatus `json:"status"`
	EstimatedHours *float64   `json:"estimated_hours"`
	DueDate        *time.Time `json:"due_date"`
	PriorityStars  float64    `json:"priority_stars"`
	AssignedTo     string     `json:"assigned_to"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// WorkLog is one logged effort entry against a work item.
// WorkDate is nil when the log row carries no date.
type WorkLog struct {
	ItemID     string     `json:"item_id"`
	HoursSpent float64    `json:"hours_spent"`
	WorkDate   *time.Time `json:"work_date"`
}

// SiblingStatus is the status-only projection of a work item that
// shares a parent with the item under evaluation.
type SiblingStatus struct {
	Status ItemStatus `json:"status"`
}

// BlockerRef identifies an upstream dependency of a blocked item.
type BlockerRef struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Status ItemStatus `json:"status"`
}

// ApprovalRequest is a task request awaiting review.
type ApprovalRequest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Project     string    `json:"project"`
	RequestedBy string    `json:"requested_by"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
