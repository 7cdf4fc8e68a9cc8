package core

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cosmodesk/taskpulse/schema"
)

// Urgency scores per rule, and the score bands that name categories.
// Categories derive from the score alone, so two items with equal
// scores always land in the same band.
const (
	scoreOverdue      = 100.0
	scoreDueToday     = 90.0
	scoreDueSoonRisky = 80.0
	scoreInProgress   = 60.0
	scoreHighPriority = 50.0
	scoreDueThisWeek  = 40.0
	scoreBaseline     = 10.0

	focusMinStars     = 2.5
	dueSoonWindowDays = 7.0
)

// FocusInput is one open work item with its logs, ready for ranking.
type FocusInput struct {
	Item schema.WorkItem
	Logs []schema.WorkLog
}

// BuildFocusQueue scores, categorizes and ranks a user's open items by
// urgency. Ordering is stable: ties keep their input order.
func BuildFocusQueue(inputs []FocusInput, now time.Time) []schema.FocusTask {
	tasks := make([]schema.FocusTask, 0, len(inputs))
	for _, in := range inputs {
		risk := CalculateDeadlineRisk(in.Item, in.Logs, nil, now)
		score := urgencyScore(in.Item, risk, now)
		category := categoryForScore(score)
		tasks = append(tasks, schema.FocusTask{
			Item:          in.Item,
			UrgencyScore:  score,
			UrgencyReason: urgencyReason(category, in.Item, now),
			Category:      category,
			DeadlineRisk:  risk,
			HoursLogged:   SumLoggedHours(in.Logs),
		})
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].UrgencyScore > tasks[j].UrgencyScore
	})
	return tasks
}

// urgencyScore walks the urgency ladder from most to least pressing and
// returns the score of the first rule that matches. Items without a due
// date can never score as overdue or due today.
func urgencyScore(item schema.WorkItem, risk schema.DeadlineRisk, now time.Time) float64 {
	due := item.DueDate
	switch {
	case due != nil && due.Before(now):
		return scoreOverdue
	case due != nil && sameDay(*due, now):
		return scoreDueToday
	case due != nil && withinDays(*due, now, dueSoonWindowDays) &&
		(risk.Level == schema.RiskHigh || risk.Level == schema.RiskCritical):
		return scoreDueSoonRisky
	case item.Status == schema.StatusInProgress:
		return scoreInProgress
	case item.PriorityStars >= focusMinStars:
		return scoreHighPriority
	case due != nil && withinDays(*due, now, dueSoonWindowDays):
		return scoreDueThisWeek
	}
	return scoreBaseline
}

// categoryForScore maps a score into its band. Bands are checked from
// the top down, so a score qualifies for the highest band it reaches.
func categoryForScore(score float64) schema.FocusCategory {
	switch {
	case score >= scoreOverdue:
		return schema.CategoryOverdue
	case score >= scoreDueToday:
		return schema.CategoryDueToday
	case score >= scoreDueSoonRisky:
		return schema.CategoryDueThisWeek
	case score >= scoreInProgress:
		return schema.CategoryInProgress
	case score >= scoreHighPriority:
		return schema.CategoryHighPriority
	}
	return schema.CategoryNormal
}

// urgencyReason renders the short label shown next to a ranked task.
func urgencyReason(category schema.FocusCategory, item schema.WorkItem, now time.Time) string {
	switch category {
	case schema.CategoryOverdue:
		days := math.Ceil(now.Sub(*item.DueDate).Hours() / 24.0)
		return fmt.Sprintf("Overdue by %.0f day(s)", days)
	case schema.CategoryDueToday:
		return "Due today"
	case schema.CategoryDueThisWeek:
		return "Due this week"
	case schema.CategoryInProgress:
		return "In progress"
	case schema.CategoryHighPriority:
		return "High priority"
	default:
		return "Normal"
	}
}

// sameDay reports whether two instants fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// withinDays reports whether due falls inside the next n days from now.
func withinDays(due, now time.Time, n float64) bool {
	diff := due.Sub(now).Hours() / 24.0
	return diff >= 0 && diff <= n
}
