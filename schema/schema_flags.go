package schema

import "time"

// RedFlag is one detected problem surfaced in the report.
// CreatedAt anchors the flag in time for deterministic sorting; it is
// derived from the underlying rows, never from the wall clock.
type RedFlag struct {
	ID            string        `json:"id"`
	Type          FlagType      `json:"type"`
	Severity      FlagSeverity  `json:"severity"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	RelatedEntity RelatedEntity `json:"related_entity"`
	ProjectName   string        `json:"project_name"`
	AssignedTo    string        `json:"assigned_to,omitempty"`
	Metrics       *FlagMetrics  `json:"metrics,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// RelatedEntity points back to the row a flag was raised for.
type RelatedEntity struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FlagMetrics carries the numbers behind a flag. Only the fields
// relevant to the flag's type are populated.
type FlagMetrics struct {
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	LoggedHours    float64  `json:"logged_hours,omitempty"`
	Percent        float64  `json:"percent,omitempty"`
	DaysLeft       *float64 `json:"days_left,omitempty"`
	DaysBlocked    *float64 `json:"days_blocked,omitempty"`
	DaysIdle       *float64 `json:"days_idle,omitempty"`
	DaysPending    *float64 `json:"days_pending,omitempty"`
	PriorityStars  *float64 `json:"priority_stars,omitempty"`
}
