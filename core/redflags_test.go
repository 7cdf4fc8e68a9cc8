package core

import (
	"testing"
	"time"

	"github.com/cosmodesk/taskpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessDeadlineFlags(t *testing.T) {
	items := []ScoredItem{
		{
			Item: schema.WorkItem{ID: "s1", Name: "Critical one", Project: "alpha", UpdatedAt: testNow},
			Risk: schema.DeadlineRisk{Level: schema.RiskCritical, Reason: "Overdue by 2 days"},
		},
		{
			Item: schema.WorkItem{ID: "s2", Name: "High one", Project: "alpha", UpdatedAt: testNow},
			Risk: schema.DeadlineRisk{Level: schema.RiskHigh, Reason: "Due in 3 days"},
		},
		{
			Item: schema.WorkItem{ID: "s3", Name: "Medium one", Project: "alpha", UpdatedAt: testNow},
			Risk: schema.DeadlineRisk{Level: schema.RiskMedium, Reason: "Due in 6 days"},
		},
		{
			Item: schema.WorkItem{ID: "s4", Name: "Quiet one", Project: "alpha", UpdatedAt: testNow},
			Risk: schema.DeadlineRisk{Level: schema.RiskNone},
		},
	}

	flags := ProcessDeadlineFlags(items)
	require.Len(t, flags, 2, "only high and critical risks become flags")

	assert.Equal(t, "deadline-s1", flags[0].ID)
	assert.Equal(t, schema.FlagDeadlineRisk, flags[0].Type)
	assert.Equal(t, schema.SeverityCritical, flags[0].Severity)
	assert.Equal(t, "Overdue by 2 days", flags[0].Description)
	assert.Equal(t, "s1", flags[0].RelatedEntity.ID)

	assert.Equal(t, schema.SeverityHigh, flags[1].Severity)
}

func TestProcessAnomalyFlags(t *testing.T) {
	items := []LoggedItem{
		{
			Item: schema.WorkItem{ID: "s1", Name: "Blown estimate", Project: "alpha",
				Status: schema.StatusInProgress, EstimatedHours: estPtr(100), UpdatedAt: testNow},
			HoursLogged: 150,
		},
		{
			Item: schema.WorkItem{ID: "s2", Name: "On track", Project: "alpha",
				Status: schema.StatusInProgress, EstimatedHours: estPtr(100), UpdatedAt: testNow},
			HoursLogged: 50,
		},
		{
			Item: schema.WorkItem{ID: "s3", Name: "No estimate", Project: "alpha",
				Status: schema.StatusInProgress, UpdatedAt: testNow},
			HoursLogged: 500,
		},
		{
			Item: schema.WorkItem{ID: "s4", Name: "Zero estimate", Project: "alpha",
				Status: schema.StatusInProgress, EstimatedHours: estPtr(0), UpdatedAt: testNow},
			HoursLogged: 500,
		},
	}

	flags := ProcessAnomalyFlags(items)
	require.Len(t, flags, 1, "only items with a positive estimate and an overrun qualify")

	flag := flags[0]
	assert.Equal(t, "anomaly-s1", flag.ID)
	assert.Equal(t, schema.SeverityHigh, flag.Severity)
	assert.Equal(t, "Estimated 100.0h, logged 150.0h (150%)", flag.Description)
	require.NotNil(t, flag.Metrics)
	assert.InDelta(t, 150.0, flag.Metrics.Percent, 1e-9)
}

func TestProcessBlockerFlags(t *testing.T) {
	daysAgo := func(d float64) time.Time {
		return testNow.Add(-time.Duration(d * 24 * float64(time.Hour)))
	}

	t.Run("severity scales with blocked duration", func(t *testing.T) {
		tests := []struct {
			name string
			days float64
			want schema.FlagSeverity
		}{
			{"short block is medium", 2, schema.SeverityMedium},
			{"boundary 3.004 rounds down to medium", 3.004, schema.SeverityMedium},
			{"just past three days is high", 3.01, schema.SeverityHigh},
			{"week-long block is high", 7, schema.SeverityHigh},
			{"past a week is critical", 7.5, schema.SeverityCritical},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				items := []BlockedItem{{
					Item: schema.WorkItem{ID: "s1", Name: "Stuck", Project: "alpha",
						Status: schema.StatusBlocked, UpdatedAt: daysAgo(tt.days)},
				}}
				flags := ProcessBlockerFlags(items, testNow)
				require.Len(t, flags, 1)
				assert.Equal(t, tt.want, flags[0].Severity)
			})
		}
	})

	t.Run("description lists blocker names", func(t *testing.T) {
		items := []BlockedItem{{
			Item: schema.WorkItem{ID: "s1", Name: "Stuck", Project: "alpha",
				Status: schema.StatusBlocked, UpdatedAt: daysAgo(4)},
			Blockers: []schema.BlockerRef{
				{ID: "b1", Name: "API contract"},
				{ID: "b2", Name: "Schema review"},
			},
		}}
		flags := ProcessBlockerFlags(items, testNow)
		require.Len(t, flags, 1)
		assert.Equal(t, "Blocked by: API contract, Schema review", flags[0].Description)
	})

	t.Run("description falls back to duration", func(t *testing.T) {
		items := []BlockedItem{{
			Item: schema.WorkItem{ID: "s1", Name: "Stuck", Project: "alpha",
				Status: schema.StatusBlocked, UpdatedAt: daysAgo(8)},
		}}
		flags := ProcessBlockerFlags(items, testNow)
		require.Len(t, flags, 1)
		assert.Equal(t, "Blocked for 8.0 days", flags[0].Description)
	})

	t.Run("non-blocked items are skipped", func(t *testing.T) {
		items := []BlockedItem{{
			Item: schema.WorkItem{ID: "s1", Status: schema.StatusInProgress, UpdatedAt: daysAgo(10)},
		}}
		assert.Empty(t, ProcessBlockerFlags(items, testNow))
	})
}

func TestProcessStaleFlags(t *testing.T) {
	daysAgo := func(d float64) time.Time {
		return testNow.Add(-time.Duration(d * 24 * float64(time.Hour)))
	}

	t.Run("idle in-progress items are flagged", func(t *testing.T) {
		items := []ActivityItem{
			{Item: schema.WorkItem{ID: "s1", Name: "Forgotten", Status: schema.StatusInProgress, UpdatedAt: daysAgo(6)}},
			{Item: schema.WorkItem{ID: "s2", Name: "Abandoned", Status: schema.StatusInProgress, UpdatedAt: daysAgo(12)}},
			{Item: schema.WorkItem{ID: "s3", Name: "Active", Status: schema.StatusInProgress, UpdatedAt: daysAgo(2)}},
			{Item: schema.WorkItem{ID: "s4", Name: "Todo", Status: schema.StatusTodo, UpdatedAt: daysAgo(30)}},
		}

		flags := ProcessStaleFlags(items, testNow)
		require.Len(t, flags, 2)
		assert.Equal(t, schema.SeverityMedium, flags[0].Severity)
		assert.Equal(t, schema.SeverityHigh, flags[1].Severity, "ten or more idle days should be high")
	})

	t.Run("recent log resets the idle clock", func(t *testing.T) {
		logDate := daysAgo(1)
		items := []ActivityItem{{
			Item:        schema.WorkItem{ID: "s1", Status: schema.StatusInProgress, UpdatedAt: daysAgo(20)},
			LastLogDate: &logDate,
		}}
		assert.Empty(t, ProcessStaleFlags(items, testNow), "a fresh log should suppress the flag")
	})

	t.Run("flag is anchored to the last activity", func(t *testing.T) {
		logDate := daysAgo(6)
		items := []ActivityItem{{
			Item:        schema.WorkItem{ID: "s1", Status: schema.StatusInProgress, UpdatedAt: daysAgo(20)},
			LastLogDate: &logDate,
		}}
		flags := ProcessStaleFlags(items, testNow)
		require.Len(t, flags, 1)
		assert.Equal(t, logDate, flags[0].CreatedAt)
		assert.Equal(t, "No activity for 6 days", flags[0].Description)
	})
}

func TestProcessUnassignedFlags(t *testing.T) {
	items := []schema.WorkItem{
		{ID: "s1", Name: "Important", Status: schema.StatusTodo, PriorityStars: 2.5, UpdatedAt: testNow},
		{ID: "s2", Name: "Urgent", Status: schema.StatusTodo, PriorityStars: 3, UpdatedAt: testNow},
		{ID: "s3", Name: "Minor", Status: schema.StatusTodo, PriorityStars: 1.5, UpdatedAt: testNow},
		{ID: "s4", Name: "Owned", Status: schema.StatusTodo, PriorityStars: 5, AssignedTo: "user-1", UpdatedAt: testNow},
		{ID: "s5", Name: "Started", Status: schema.StatusInProgress, PriorityStars: 5, UpdatedAt: testNow},
	}

	flags := ProcessUnassignedFlags(items)
	require.Len(t, flags, 2)

	assert.Equal(t, "unassigned-s1", flags[0].ID)
	assert.Equal(t, schema.SeverityMedium, flags[0].Severity)
	assert.Equal(t, "2.5-star item has no assignee", flags[0].Description)

	assert.Equal(t, schema.SeverityHigh, flags[1].Severity, "three or more stars should be high")
}

func TestProcessApprovalFlags(t *testing.T) {
	daysAgo := func(d float64) time.Time {
		return testNow.Add(-time.Duration(d * 24 * float64(time.Hour)))
	}

	requests := []schema.ApprovalRequest{
		{ID: "r1", Name: "New feature", Project: "alpha", Status: schema.ApprovalPending, CreatedAt: daysAgo(4)},
		{ID: "r2", Name: "Old ask", Project: "alpha", Status: schema.ApprovalPending, CreatedAt: daysAgo(8)},
		{ID: "r3", Name: "Fresh ask", Project: "alpha", Status: schema.ApprovalPending, CreatedAt: daysAgo(2)},
		{ID: "r4", Name: "Approved", Project: "alpha", Status: "approved", CreatedAt: daysAgo(30)},
	}

	flags := ProcessApprovalFlags(requests, testNow)
	require.Len(t, flags, 2)

	assert.Equal(t, "approval-r1", flags[0].ID)
	assert.Equal(t, schema.SeverityMedium, flags[0].Severity)
	assert.Equal(t, "Pending approval for 4 days", flags[0].Description)

	assert.Equal(t, schema.SeverityHigh, flags[1].Severity, "more than a week pending should be high")
	assert.Equal(t, "r2", flags[1].RelatedEntity.ID)
}

func TestMergeAndSortRedFlags(t *testing.T) {
	at := func(h int) time.Time { return testNow.Add(time.Duration(h) * time.Hour) }

	groupA := []schema.RedFlag{
		{ID: "a1", Severity: schema.SeverityMedium, CreatedAt: at(1)},
		{ID: "a2", Severity: schema.SeverityCritical, CreatedAt: at(5)},
	}
	groupB := []schema.RedFlag{
		{ID: "b1", Severity: schema.SeverityHigh, CreatedAt: at(2)},
		{ID: "b2", Severity: schema.SeverityCritical, CreatedAt: at(3)},
		{ID: "b3", Severity: schema.SeverityMedium, CreatedAt: at(1)},
	}

	merged := MergeAndSortRedFlags(groupA, groupB)
	require.Len(t, merged, 5)

	gotIDs := make([]string, len(merged))
	for i, f := range merged {
		gotIDs[i] = f.ID
	}
	// Critical first (older before newer), then high, then medium; the
	// two mediums share a timestamp so input order is preserved.
	assert.Equal(t, []string{"b2", "a2", "b1", "a1", "b3"}, gotIDs)
}

func TestMergeAndSortRedFlags_Empty(t *testing.T) {
	assert.Empty(t, MergeAndSortRedFlags())
	assert.Empty(t, MergeAndSortRedFlags(nil, nil))
}
