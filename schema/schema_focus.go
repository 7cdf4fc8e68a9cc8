package schema

// FocusTask is one entry in a user's urgency-ranked focus queue.
// Category is derived from UrgencyScore alone, so equal scores always
// share a category regardless of which rule produced them.
type FocusTask struct {
	Item          WorkItem      `json:"item"`
	UrgencyScore  float64       `json:"urgency_score"`
	UrgencyReason string        `json:"urgency_reason"`
	Category      FocusCategory `json:"category"`
	DeadlineRisk  DeadlineRisk  `json:"deadline_risk"`
	HoursLogged   float64       `json:"hours_logged"`
}
