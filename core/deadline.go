// Package core implements the taskpulse scoring engines: deadline risk
// classification, overrun anomaly detection, red flag aggregation and
// focus queue ranking. Every function here is pure — rows in, derived
// values out — with a single caller-provided reference time.
package core

import (
	"fmt"
	"math"
	"time"

	"github.com/cosmodesk/taskpulse/schema"
)

// Tunable thresholds for deadline risk classification.
const (
	// workdayHours converts remaining days into an available-effort budget.
	workdayHours = 8.0

	// Post-overrun remaining-effort floors: a quarter of the original
	// estimate or 15% of logged effort, whichever is larger.
	overrunEstimateFloor = 0.25
	overrunLoggedFloor   = 0.15

	// Sibling extrapolation needs a minimally meaningful group.
	minSiblingsForProjection = 2
)

// SumLoggedHours totals the hours across all work log entries.
// No logs means zero hours, never an error.
func SumLoggedHours(logs []schema.WorkLog) float64 {
	var total float64
	for _, log := range logs {
		total += log.HoursSpent
	}
	return total
}

// CalculateDeadlineRisk derives the full risk assessment for one work
// item from its logs and sibling statuses, relative to now. The result
// is deterministic for a fixed now and never panics on degenerate rows.
func CalculateDeadlineRisk(item schema.WorkItem, logs []schema.WorkLog, siblings []schema.SiblingStatus, now time.Time) schema.DeadlineRisk {
	// --- 1. Base effort numbers ---
	logged := SumLoggedHours(logs)
	overrun := item.EstimatedHours != nil && logged >= *item.EstimatedHours && item.Status != schema.StatusDone

	// --- 2. Remaining effort (may extrapolate from siblings) ---
	remaining, projected := remainingHours(item, logged, overrun, siblings)

	// --- 3. Progress metrics ---
	effort := effortPercent(item.EstimatedHours, logged)
	completion := completionPercent(item.Status, siblings)

	// --- 4. Time runway ---
	var daysLeft *float64
	if item.DueDate != nil {
		d := item.DueDate.Sub(now).Hours() / 24.0
		daysLeft = &d
	}

	// --- 5. Level and reason ---
	var level schema.RiskLevel
	if item.EstimatedHours != nil {
		level = riskLevelWithEstimate(item.Status, daysLeft, remaining, completion, overrun)
	} else {
		level = riskLevelNoEstimate(item.Status, daysLeft)
	}
	reason := riskReason(level, daysLeft, effort, overrun, completion)

	risk := schema.DeadlineRisk{
		Level:                 level,
		Reason:                reason,
		HoursRemaining:        remaining,
		HoursLogged:           logged,
		EstimatedHours:        item.EstimatedHours,
		EffortPercent:         schema.Round1(effort),
		TaskCompletionPercent: schema.Round1(completion),
		IsOverrun:             overrun,
		ProjectedTotal:        projected,
	}
	if daysLeft != nil {
		risk.DaysLeft = schema.Float64Ptr(schema.Round1(*daysLeft))
	}
	return risk
}

// remainingHours estimates how much effort is still needed. It returns
// nil when no estimate exists for an unfinished item. The second result
// is the projected total, set only when siblings were extrapolated.
func remainingHours(item schema.WorkItem, logged float64, overrun bool, siblings []schema.SiblingStatus) (*float64, *float64) {
	if item.Status == schema.StatusDone {
		return schema.Float64Ptr(0), nil
	}
	if item.EstimatedHours == nil {
		return nil, nil
	}
	est := *item.EstimatedHours
	if logged < est {
		return schema.Float64Ptr(est - logged), nil
	}

	// Past the estimate. Prefer extrapolating the true total from how
	// far the sibling group has progressed.
	if overrun && len(siblings) >= minSiblingsForProjection {
		done := doneSiblings(siblings)
		if done > 0 && done < len(siblings) {
			ratio := float64(done) / float64(len(siblings))
			projected := logged / ratio
			return schema.Float64Ptr(projected - logged), schema.Float64Ptr(projected)
		}
	}

	// No usable sibling signal: fall back to the tuned floor.
	floor := math.Max(est*overrunEstimateFloor, logged*overrunLoggedFloor)
	return schema.Float64Ptr(floor), nil
}

// effortPercent reports logged effort as a share of the estimate.
// Items without a positive estimate report zero.
func effortPercent(estimate *float64, logged float64) float64 {
	if estimate == nil || *estimate <= 0 {
		return 0
	}
	return logged / *estimate * 100
}

// completionPercent measures group progress from sibling statuses, or
// falls back to a per-item heuristic when the item stands alone.
func completionPercent(status schema.ItemStatus, siblings []schema.SiblingStatus) float64 {
	if len(siblings) > 0 {
		return float64(doneSiblings(siblings)) / float64(len(siblings)) * 100
	}
	switch status {
	case schema.StatusDone:
		return 100
	case schema.StatusInProgress:
		return 50
	default:
		return 0
	}
}

func doneSiblings(siblings []schema.SiblingStatus) int {
	var done int
	for _, s := range siblings {
		if s.Status == schema.StatusDone {
			done++
		}
	}
	return done
}

// riskLevelWithEstimate walks the estimate-aware rule ladder from most
// to least severe and returns the first level whose condition holds.
// remaining is never nil when an estimate exists.
func riskLevelWithEstimate(status schema.ItemStatus, daysLeft *float64, remaining *float64, completion float64, overrun bool) schema.RiskLevel {
	if daysLeft == nil || status == schema.StatusDone {
		return schema.RiskNone
	}
	d := *daysLeft
	avail := math.Max(d, 0) * workdayHours
	rem := 0.0
	if remaining != nil {
		rem = *remaining
	}

	switch {
	case d < 0:
		return schema.RiskCritical
	case d <= 1 && rem > avail:
		return schema.RiskCritical
	case overrun && d <= 3:
		return schema.RiskCritical
	case d <= 3 && rem > avail*0.8:
		return schema.RiskHigh
	case d <= 7 && completion < 30:
		return schema.RiskHigh
	case overrun && d <= 7:
		return schema.RiskHigh
	case d <= 7 && rem > avail*0.6:
		return schema.RiskMedium
	case d <= 14 && completion < 20:
		return schema.RiskMedium
	case d <= 14:
		return schema.RiskLow
	}
	return schema.RiskNone
}

// riskLevelNoEstimate classifies purely from the due date when no
// effort estimate exists.
func riskLevelNoEstimate(status schema.ItemStatus, daysLeft *float64) schema.RiskLevel {
	if daysLeft == nil || status == schema.StatusDone {
		return schema.RiskNone
	}
	d := *daysLeft
	switch {
	case d < 0:
		return schema.RiskCritical
	case d <= 2:
		return schema.RiskHigh
	case d <= 7:
		return schema.RiskMedium
	}
	return schema.RiskNone
}

// riskReason produces the human-readable explanation for a level.
// Levels of none always map to an empty reason.
func riskReason(level schema.RiskLevel, daysLeft *float64, effort float64, overrun bool, completion float64) string {
	if level == schema.RiskNone {
		return ""
	}
	switch {
	case daysLeft != nil && *daysLeft < 0:
		return fmt.Sprintf("Overdue by %.0f days", math.Ceil(-*daysLeft))
	case overrun:
		return fmt.Sprintf("%.0f%% of estimate, still in progress", effort)
	case daysLeft != nil && *daysLeft <= 1:
		return "Due tomorrow or today"
	case daysLeft != nil && *daysLeft <= 7 && completion < 30:
		return fmt.Sprintf("Due in %.0f days, low completion", math.Ceil(*daysLeft))
	case daysLeft != nil:
		return fmt.Sprintf("Due in %.0f days", math.Ceil(*daysLeft))
	}
	return "Approaching deadline"
}
