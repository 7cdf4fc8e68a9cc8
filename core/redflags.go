package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/cosmodesk/taskpulse/schema"
)

// Red flag detection thresholds, in days unless noted.
const (
	blockedCriticalDays = 7.0
	blockedHighDays     = 3.0

	staleMinIdleDays  = 5.0
	staleHighIdleDays = 10.0

	unassignedMinStars  = 2.0
	unassignedHighStars = 3.0

	approvalMinPendingDays  = 3.0
	approvalHighPendingDays = 7.0
)

// relatedSubtask is the entity type stamped on item-derived flags.
const relatedSubtask = "subtask"

// ScoredItem pairs a work item with its computed deadline risk.
type ScoredItem struct {
	Item schema.WorkItem
	Risk schema.DeadlineRisk
}

// LoggedItem pairs a work item with its summed logged hours.
type LoggedItem struct {
	Item        schema.WorkItem
	HoursLogged float64
}

// BlockedItem pairs a blocked work item with its upstream blockers.
type BlockedItem struct {
	Item     schema.WorkItem
	Blockers []schema.BlockerRef
}

// ActivityItem pairs a work item with the date of its most recent log,
// nil when the item has no dated logs.
type ActivityItem struct {
	Item        schema.WorkItem
	LastLogDate *time.Time
}

// ProcessDeadlineFlags raises flags for items whose deadline risk is
// high or critical. Lower levels stay out of the report.
func ProcessDeadlineFlags(items []ScoredItem) []schema.RedFlag {
	var flags []schema.RedFlag
	for _, si := range items {
		if si.Risk.Level != schema.RiskHigh && si.Risk.Level != schema.RiskCritical {
			continue
		}
		description := si.Risk.Reason
		if description == "" {
			description = "Approaching deadline"
		}
		flags = append(flags, schema.RedFlag{
			ID:          fmt.Sprintf("deadline-%s", si.Item.ID),
			Type:        schema.FlagDeadlineRisk,
			Severity:    schema.FlagSeverity(si.Risk.Level),
			Title:       fmt.Sprintf("Deadline risk: %s", si.Item.Name),
			Description: description,
			RelatedEntity: schema.RelatedEntity{
				Type: relatedSubtask,
				ID:   si.Item.ID,
				Name: si.Item.Name,
			},
			ProjectName: si.Item.Project,
			AssignedTo:  si.Item.AssignedTo,
			Metrics: &schema.FlagMetrics{
				EstimatedHours: si.Risk.EstimatedHours,
				LoggedHours:    si.Risk.HoursLogged,
				Percent:        si.Risk.EffortPercent,
				DaysLeft:       si.Risk.DaysLeft,
			},
			CreatedAt: si.Item.UpdatedAt,
		})
	}
	return flags
}

// ProcessAnomalyFlags raises flags for items whose logged effort has
// blown past the estimate. Items without a positive estimate never
// qualify.
func ProcessAnomalyFlags(items []LoggedItem) []schema.RedFlag {
	var flags []schema.RedFlag
	for _, li := range items {
		if li.Item.EstimatedHours == nil || *li.Item.EstimatedHours <= 0 {
			continue
		}
		est := *li.Item.EstimatedHours
		severity, ok := OverrunAnomalySeverity(li.HoursLogged, est, li.Item.Status)
		if !ok {
			continue
		}
		percent := li.HoursLogged / est * 100
		flags = append(flags, schema.RedFlag{
			ID:       fmt.Sprintf("anomaly-%s", li.Item.ID),
			Type:     schema.FlagOverrunAnomaly,
			Severity: severity,
			Title:    fmt.Sprintf("Effort overrun: %s", li.Item.Name),
			Description: fmt.Sprintf("Estimated %.1fh, logged %.1fh (%.0f%%)",
				est, li.HoursLogged, percent),
			RelatedEntity: schema.RelatedEntity{
				Type: relatedSubtask,
				ID:   li.Item.ID,
				Name: li.Item.Name,
			},
			ProjectName: li.Item.Project,
			AssignedTo:  li.Item.AssignedTo,
			Metrics: &schema.FlagMetrics{
				EstimatedHours: li.Item.EstimatedHours,
				LoggedHours:    li.HoursLogged,
				Percent:        schema.Round1(percent),
			},
			CreatedAt: li.Item.UpdatedAt,
		})
	}
	return flags
}

// ProcessBlockerFlags raises flags for blocked items, scaling severity
// with how long the item has sat blocked. Days are rounded to two
// decimals before comparison so boundary rows classify predictably.
func ProcessBlockerFlags(items []BlockedItem, now time.Time) []schema.RedFlag {
	var flags []schema.RedFlag
	for _, bi := range items {
		if bi.Item.Status != schema.StatusBlocked {
			continue
		}
		daysBlocked := schema.Round2(now.Sub(bi.Item.UpdatedAt).Hours() / 24.0)

		var severity schema.FlagSeverity
		switch {
		case daysBlocked > blockedCriticalDays:
			severity = schema.SeverityCritical
		case daysBlocked > blockedHighDays:
			severity = schema.SeverityHigh
		default:
			severity = schema.SeverityMedium
		}

		description := schema.FormatBlockerNames(bi.Blockers)
		if description != "" {
			description = "Blocked by: " + description
		} else {
			description = fmt.Sprintf("Blocked for %.1f days", daysBlocked)
		}

		flags = append(flags, schema.RedFlag{
			ID:          fmt.Sprintf("blocked-%s", bi.Item.ID),
			Type:        schema.FlagBlockedItem,
			Severity:    severity,
			Title:       fmt.Sprintf("Blocked: %s", bi.Item.Name),
			Description: description,
			RelatedEntity: schema.RelatedEntity{
				Type: relatedSubtask,
				ID:   bi.Item.ID,
				Name: bi.Item.Name,
			},
			ProjectName: bi.Item.Project,
			AssignedTo:  bi.Item.AssignedTo,
			Metrics: &schema.FlagMetrics{
				DaysBlocked: schema.Float64Ptr(daysBlocked),
			},
			CreatedAt: bi.Item.UpdatedAt,
		})
	}
	return flags
}

// ProcessStaleFlags raises flags for in-progress items with no recent
// activity. Last activity is the later of the item's update time and
// its most recent log date.
func ProcessStaleFlags(items []ActivityItem, now time.Time) []schema.RedFlag {
	var flags []schema.RedFlag
	for _, ai := range items {
		if ai.Item.Status != schema.StatusInProgress {
			continue
		}
		lastActivity := ai.Item.UpdatedAt
		if ai.LastLogDate != nil && ai.LastLogDate.After(lastActivity) {
			lastActivity = *ai.LastLogDate
		}
		idleDays := now.Sub(lastActivity).Hours() / 24.0
		if idleDays < staleMinIdleDays {
			continue
		}

		severity := schema.SeverityMedium
		if idleDays >= staleHighIdleDays {
			severity = schema.SeverityHigh
		}

		flags = append(flags, schema.RedFlag{
			ID:          fmt.Sprintf("stale-%s", ai.Item.ID),
			Type:        schema.FlagStaleItem,
			Severity:    severity,
			Title:       fmt.Sprintf("Stale: %s", ai.Item.Name),
			Description: fmt.Sprintf("No activity for %.0f days", idleDays),
			RelatedEntity: schema.RelatedEntity{
				Type: relatedSubtask,
				ID:   ai.Item.ID,
				Name: ai.Item.Name,
			},
			ProjectName: ai.Item.Project,
			AssignedTo:  ai.Item.AssignedTo,
			Metrics: &schema.FlagMetrics{
				DaysIdle: schema.Float64Ptr(schema.Round1(idleDays)),
			},
			CreatedAt: lastActivity,
		})
	}
	return flags
}

// ProcessUnassignedFlags raises flags for high-priority todo items that
// nobody owns yet.
func ProcessUnassignedFlags(items []schema.WorkItem) []schema.RedFlag {
	var flags []schema.RedFlag
	for _, item := range items {
		if item.Status != schema.StatusTodo || item.AssignedTo != "" {
			continue
		}
		if item.PriorityStars < unassignedMinStars {
			continue
		}

		severity := schema.SeverityMedium
		if item.PriorityStars >= unassignedHighStars {
			severity = schema.SeverityHigh
		}

		flags = append(flags, schema.RedFlag{
			ID:          fmt.Sprintf("unassigned-%s", item.ID),
			Type:        schema.FlagUnassignedItem,
			Severity:    severity,
			Title:       fmt.Sprintf("Unassigned high-priority: %s", item.Name),
			Description: fmt.Sprintf("%.1f-star item has no assignee", item.PriorityStars),
			RelatedEntity: schema.RelatedEntity{
				Type: relatedSubtask,
				ID:   item.ID,
				Name: item.Name,
			},
			ProjectName: item.Project,
			Metrics: &schema.FlagMetrics{
				PriorityStars: schema.Float64Ptr(item.PriorityStars),
			},
			CreatedAt: item.UpdatedAt,
		})
	}
	return flags
}

// ProcessApprovalFlags raises flags for task requests stuck in pending
// review for more than three days.
func ProcessApprovalFlags(requests []schema.ApprovalRequest, now time.Time) []schema.RedFlag {
	var flags []schema.RedFlag
	for _, req := range requests {
		if req.Status != schema.ApprovalPending {
			continue
		}
		pendingDays := now.Sub(req.CreatedAt).Hours() / 24.0
		if pendingDays <= approvalMinPendingDays {
			continue
		}

		severity := schema.SeverityMedium
		if pendingDays > approvalHighPendingDays {
			severity = schema.SeverityHigh
		}

		flags = append(flags, schema.RedFlag{
			ID:          fmt.Sprintf("approval-%s", req.ID),
			Type:        schema.FlagPendingApproval,
			Severity:    severity,
			Title:       fmt.Sprintf("Pending approval: %s", req.Name),
			Description: fmt.Sprintf("Pending approval for %.0f days", pendingDays),
			RelatedEntity: schema.RelatedEntity{
				Type: "task_request",
				ID:   req.ID,
				Name: req.Name,
			},
			ProjectName: req.Project,
			AssignedTo:  req.RequestedBy,
			Metrics: &schema.FlagMetrics{
				DaysPending: schema.Float64Ptr(schema.Round1(pendingDays)),
			},
			CreatedAt: req.CreatedAt,
		})
	}
	return flags
}

// MergeAndSortRedFlags combines flag groups into one report ordered by
// severity (critical first), then by CreatedAt ascending. The sort is
// stable, so equal flags keep their detector order.
func MergeAndSortRedFlags(groups ...[]schema.RedFlag) []schema.RedFlag {
	var merged []schema.RedFlag
	for _, group := range groups {
		merged = append(merged, group...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		ri, rj := merged[i].Severity.Rank(), merged[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})
	return merged
}
