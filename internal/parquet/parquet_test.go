package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cosmodesk/taskpulse/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedFlagRecordStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(RedFlagRecord))
	require.NotNil(t, s)

	expectedColumns := []string{
		"flag_id",
		"flag_type",
		"severity",
		"title",
		"description",
		"entity_type",
		"entity_id",
		"project_name",
		"assigned_to",
		"estimated_hours",
		"logged_hours",
		"effort_percent",
		"created_at",
	}

	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestFocusTaskRecordStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(FocusTaskRecord))
	require.NotNil(t, s)

	expectedColumns := []string{
		"item_id",
		"item_name",
		"project_name",
		"status",
		"urgency_score",
		"urgency_reason",
		"category",
		"risk_level",
		"hours_logged",
		"due_date",
		"priority_stars",
	}

	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestConvertRedFlagRecords(t *testing.T) {
	est := 10.0
	created := time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC)
	flags := []schema.RedFlag{
		{
			ID:          "anomaly-s1",
			Type:        schema.FlagOverrunAnomaly,
			Severity:    schema.SeverityHigh,
			Title:       "Effort overrun: Implement checkout flow",
			Description: "Estimated 10.0h, logged 15.0h (150%)",
			RelatedEntity: schema.RelatedEntity{
				Type: "subtask", ID: "s1", Name: "Implement checkout flow",
			},
			ProjectName: "alpha",
			AssignedTo:  "user-1",
			Metrics:     &schema.FlagMetrics{EstimatedHours: &est, LoggedHours: 15, Percent: 150},
			CreatedAt:   created,
		},
		{
			ID:       "unassigned-s2",
			Type:     schema.FlagUnassignedItem,
			Severity: schema.SeverityMedium,
			RelatedEntity: schema.RelatedEntity{
				Type: "subtask", ID: "s2", Name: "Spike",
			},
			ProjectName: "alpha",
			CreatedAt:   created,
		},
	}

	records := ConvertRedFlagRecords(flags)
	require.Len(t, records, 2)

	assert.Equal(t, "anomaly-s1", records[0].FlagID)
	assert.Equal(t, "anomaly", records[0].FlagType)
	require.NotNil(t, records[0].AssignedTo)
	assert.Equal(t, "user-1", *records[0].AssignedTo)
	require.NotNil(t, records[0].EstimatedHours)
	assert.InDelta(t, 10.0, *records[0].EstimatedHours, 1e-9)
	assert.InDelta(t, 150.0, records[0].EffortPercent, 1e-9)

	assert.Nil(t, records[1].AssignedTo, "empty assignee should map to null")
	assert.Nil(t, records[1].EstimatedHours, "missing metrics should map to null")
}

func TestConvertFocusTaskRecords(t *testing.T) {
	due := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	tasks := []schema.FocusTask{
		{
			Item: schema.WorkItem{ID: "s1", Name: "Ship release", Project: "alpha",
				Status: schema.StatusInProgress, DueDate: &due, PriorityStars: 3},
			UrgencyScore:  80,
			UrgencyReason: "Due this week",
			Category:      schema.CategoryDueThisWeek,
			DeadlineRisk:  schema.DeadlineRisk{Level: schema.RiskHigh},
			HoursLogged:   6,
		},
	}

	records := ConvertFocusTaskRecords(tasks)
	require.Len(t, records, 1)

	assert.Equal(t, "s1", records[0].ItemID)
	assert.Equal(t, "due_this_week", records[0].Category)
	assert.Equal(t, "high", records[0].RiskLevel)
	require.NotNil(t, records[0].DueDate)
	assert.Equal(t, due, *records[0].DueDate)
}

func TestWriteRedFlagsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "red_flags.parquet")

	records := ConvertRedFlagRecords([]schema.RedFlag{
		{
			ID:            "blocked-s1",
			Type:          schema.FlagBlockedItem,
			Severity:      schema.SeverityCritical,
			Title:         "Blocked: Migrate database",
			RelatedEntity: schema.RelatedEntity{Type: "subtask", ID: "s1", Name: "Migrate database"},
			ProjectName:   "alpha",
			CreatedAt:     time.Now().UTC(),
		},
	})

	require.NoError(t, WriteRedFlagsParquet(records, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Parquet file should exist")
	assert.Positive(t, info.Size(), "Parquet file should not be empty")
}

func TestWriteFocusQueueParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "focus_queue.parquet")

	records := ConvertFocusTaskRecords([]schema.FocusTask{
		{
			Item:         schema.WorkItem{ID: "s1", Name: "Ship release", Project: "alpha", Status: schema.StatusInProgress},
			UrgencyScore: 60,
			Category:     schema.CategoryInProgress,
			DeadlineRisk: schema.DeadlineRisk{Level: schema.RiskLow},
		},
	})

	require.NoError(t, WriteFocusQueueParquet(records, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteRedFlagsParquet_BadPath(t *testing.T) {
	err := WriteRedFlagsParquet(nil, filepath.Join("no", "such", "dir", "out.parquet"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}
