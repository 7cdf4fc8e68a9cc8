package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound1(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact value unchanged", 3.5, 3.5},
		{"rounds down", 3.04, 3.0},
		{"rounds up", 3.06, 3.1},
		{"half rounds away from zero", 2.25, 2.3},
		{"negative value", -1.25, -1.2},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Round1(tt.in), 1e-9)
		})
	}
}

func TestRound2(t *testing.T) {
	// 3.004 days blocked must compare as 3.0, not 3.004.
	assert.InDelta(t, 3.0, Round2(3.004), 1e-9)
	assert.InDelta(t, 3.01, Round2(3.005), 1e-9)
	assert.InDelta(t, 7.13, Round2(7.1349), 1e-9)
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 0, SeverityCritical.Rank())
	assert.Equal(t, 1, SeverityHigh.Rank())
	assert.Equal(t, 2, SeverityMedium.Rank())
	assert.Equal(t, 3, FlagSeverity("bogus").Rank(), "unknown severities should sort last")
}

func TestFlagTypeValues(t *testing.T) {
	// These strings are the wire format consumed by downstream tools
	// (JSON, CSV, Parquet); renaming a constant must not change them.
	tests := []struct {
		flagType FlagType
		want     string
	}{
		{FlagDeadlineRisk, "deadline"},
		{FlagOverrunAnomaly, "anomaly"},
		{FlagBlockedItem, "blocked"},
		{FlagStaleItem, "stale"},
		{FlagUnassignedItem, "unassigned"},
		{FlagPendingApproval, "pending_approval"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, string(tt.flagType))
		})
	}
}

func TestRiskOrdinal(t *testing.T) {
	levels := []RiskLevel{RiskNone, RiskLow, RiskMedium, RiskHigh, RiskCritical}
	for i := 1; i < len(levels); i++ {
		assert.Greater(t, levels[i].Ordinal(), levels[i-1].Ordinal(),
			"%s should rank above %s", levels[i], levels[i-1])
	}
}

func TestFormatBlockerNames(t *testing.T) {
	blockers := []BlockerRef{
		{ID: "b1", Name: "API contract", Status: StatusInProgress},
		{ID: "b2", Name: "", Status: StatusTodo},
		{ID: "b3", Name: "Design review", Status: StatusBlocked},
	}
	assert.Equal(t, "API contract, Design review", FormatBlockerNames(blockers))
	assert.Equal(t, "", FormatBlockerNames(nil))
}
