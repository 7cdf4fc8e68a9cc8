package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cosmodesk/taskpulse/internal/contract"
	"github.com/cosmodesk/taskpulse/internal/outwriter"
	"github.com/cosmodesk/taskpulse/schema"
)

// ExecutorFunc defines the function signature for executing different report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, store contract.ItemStore) error

// ExecuteRedFlags builds the red flag report and prints results to stdout.
// It serves as the main entry point for the 'flags' mode.
func ExecuteRedFlags(ctx context.Context, cfg *contract.Config, store contract.ItemStore) error {
	start := time.Now()
	flags, err := BuildRedFlagReport(ctx, store, cfg.Project, start.UTC())
	if err != nil {
		return err
	}
	if len(flags) > cfg.ResultLimit {
		flags = flags[:cfg.ResultLimit]
	}
	duration := time.Since(start)
	return outwriter.PrintRedFlags(flags, cfg, duration)
}

// ExecuteFocusQueue builds a user's focus queue and prints results to stdout.
// It serves as the main entry point for the 'focus' mode.
func ExecuteFocusQueue(ctx context.Context, cfg *contract.Config, store contract.ItemStore) error {
	start := time.Now()
	if cfg.Assignee == "" {
		return errors.New("an assignee is required")
	}
	tasks, err := BuildFocusQueueReport(ctx, store, cfg.Assignee, start.UTC())
	if err != nil {
		return err
	}
	if len(tasks) > cfg.ResultLimit {
		tasks = tasks[:cfg.ResultLimit]
	}
	duration := time.Since(start)
	return outwriter.PrintFocusQueue(tasks, cfg, duration)
}

// ExecuteItemRisk assesses a single item's deadline risk and prints the
// detail to stdout. It serves as the main entry point for the 'risk' mode.
func ExecuteItemRisk(ctx context.Context, cfg *contract.Config, store contract.ItemStore) error {
	start := time.Now()
	if cfg.ItemID == "" {
		return errors.New("an item ID is required")
	}
	item, risk, err := BuildItemRisk(ctx, store, cfg.ItemID, start.UTC())
	if err != nil {
		return err
	}
	return outwriter.PrintItemRisk(item, risk, cfg)
}

// BuildRedFlagReport fetches all open rows for a project, runs every
// flag detector against one shared reference time, and merges the
// results into a single severity-sorted report.
func BuildRedFlagReport(ctx context.Context, store contract.ItemStore, project string, now time.Time) ([]schema.RedFlag, error) {
	items, err := store.ListOpenWorkItems(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to list open work items: %w", err)
	}

	var (
		scored   []ScoredItem
		logged   []LoggedItem
		blocked  []BlockedItem
		activity []ActivityItem
	)
	for _, item := range items {
		logs, err := store.ListWorkLogs(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list work logs for %s: %w", item.ID, err)
		}
		siblings, err := store.ListSiblingStatuses(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list siblings for %s: %w", item.ID, err)
		}

		risk := CalculateDeadlineRisk(item, logs, siblings, now)
		scored = append(scored, ScoredItem{Item: item, Risk: risk})
		logged = append(logged, LoggedItem{Item: item, HoursLogged: SumLoggedHours(logs)})
		activity = append(activity, ActivityItem{Item: item, LastLogDate: lastLogDate(logs)})

		if item.Status == schema.StatusBlocked {
			blockers, err := store.ListBlockers(ctx, item.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list blockers for %s: %w", item.ID, err)
			}
			blocked = append(blocked, BlockedItem{Item: item, Blockers: blockers})
		}
	}

	approvals, err := store.ListPendingApprovals(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}

	return MergeAndSortRedFlags(
		ProcessDeadlineFlags(scored),
		ProcessAnomalyFlags(logged),
		ProcessBlockerFlags(blocked, now),
		ProcessStaleFlags(activity, now),
		ProcessUnassignedFlags(items),
		ProcessApprovalFlags(approvals, now),
	), nil
}

// BuildFocusQueueReport fetches one user's open items with their logs
// and ranks them by urgency against one shared reference time.
func BuildFocusQueueReport(ctx context.Context, store contract.ItemStore, assignee string, now time.Time) ([]schema.FocusTask, error) {
	items, err := store.ListWorkItemsByAssignee(ctx, assignee)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for %s: %w", assignee, err)
	}

	inputs := make([]FocusInput, 0, len(items))
	for _, item := range items {
		logs, err := store.ListWorkLogs(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list work logs for %s: %w", item.ID, err)
		}
		inputs = append(inputs, FocusInput{Item: item, Logs: logs})
	}

	return BuildFocusQueue(inputs, now), nil
}

// BuildItemRisk fetches one item with its logs and siblings and derives
// its full deadline risk assessment.
func BuildItemRisk(ctx context.Context, store contract.ItemStore, itemID string, now time.Time) (schema.WorkItem, schema.DeadlineRisk, error) {
	item, err := store.GetWorkItem(ctx, itemID)
	if err != nil {
		return schema.WorkItem{}, schema.DeadlineRisk{}, fmt.Errorf("failed to get work item %s: %w", itemID, err)
	}
	logs, err := store.ListWorkLogs(ctx, itemID)
	if err != nil {
		return schema.WorkItem{}, schema.DeadlineRisk{}, fmt.Errorf("failed to list work logs for %s: %w", itemID, err)
	}
	siblings, err := store.ListSiblingStatuses(ctx, itemID)
	if err != nil {
		return schema.WorkItem{}, schema.DeadlineRisk{}, fmt.Errorf("failed to list siblings for %s: %w", itemID, err)
	}

	return item, CalculateDeadlineRisk(item, logs, siblings, now), nil
}

// lastLogDate returns the most recent dated log entry, nil when none exist.
func lastLogDate(logs []schema.WorkLog) *time.Time {
	var last *time.Time
	for _, log := range logs {
		if log.WorkDate == nil {
			continue
		}
		if last == nil || log.WorkDate.After(*last) {
			last = log.WorkDate
		}
	}
	return last
}
