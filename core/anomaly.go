package core

import "github.com/cosmodesk/taskpulse/schema"

// Overrun ratio thresholds (logged / estimated).
const (
	anomalyCriticalRatio = 2.0
	anomalyHighRatio     = 1.5
	anomalyMediumRatio   = 1.0
)

// OverrunAnomalySeverity classifies how badly logged effort exceeds the
// estimate. The boolean is false when no anomaly exists: the item is
// done, or logged effort is still below the estimate. estimatedHours
// must be positive; callers filter out missing or zero estimates.
func OverrunAnomalySeverity(hoursLogged, estimatedHours float64, status schema.ItemStatus) (schema.FlagSeverity, bool) {
	if status == schema.StatusDone {
		return "", false
	}
	if hoursLogged < estimatedHours {
		return "", false
	}

	ratio := hoursLogged / estimatedHours
	switch {
	case ratio >= anomalyCriticalRatio:
		return schema.SeverityCritical, true
	case ratio >= anomalyHighRatio:
		return schema.SeverityHigh, true
	default:
		// logged >= estimated always yields at least medium.
		return schema.SeverityMedium, true
	}
}
