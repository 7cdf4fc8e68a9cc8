package schema

// DeadlineRisk is the full risk assessment for one work item.
//
// DaysLeft is nil when the item has no due date, and is rounded to one
// decimal. HoursRemaining is nil when no estimate exists for an
// unfinished item. ProjectedTotal is set only when an overrun item was
// extrapolated from sibling completion.
type DeadlineRisk struct {
	Level                 RiskLevel `json:"level"`
	Reason                string    `json:"reason"`
	DaysLeft              *float64  `json:"days_left"`
	HoursRemaining        *float64  `json:"hours_remaining"`
	HoursLogged           float64   `json:"hours_logged"`
	EstimatedHours        *float64  `json:"estimated_hours"`
	EffortPercent         float64   `json:"effort_percent"`
	TaskCompletionPercent float64   `json:"task_completion_percent"`
	IsOverrun             bool      `json:"is_overrun"`
	ProjectedTotal        *float64  `json:"projected_total,omitempty"`
}
