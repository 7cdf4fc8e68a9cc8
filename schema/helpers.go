package schema

import (
	"math"
	"strings"
)

// Round1 rounds a value to one decimal place, the precision used for
// day counts and percentages in rendered output.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds a value to two decimal places, the precision used for
// blocked-day counts before severity comparison.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Float64Ptr returns a pointer to v. Useful for optional numeric fields.
func Float64Ptr(v float64) *float64 {
	return &v
}

// FormatBlockerNames joins blocker names for display, skipping blanks.
func FormatBlockerNames(blockers []BlockerRef) string {
	var names []string
	for _, b := range blockers {
		if b.Name != "" {
			names = append(names, b.Name)
		}
	}
	return strings.Join(names, ", ")
}
