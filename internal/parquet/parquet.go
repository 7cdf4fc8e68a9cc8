// Package parquet provides data structures and functions for exporting
// taskpulse report snapshots to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/cosmodesk/taskpulse/schema"
	"github.com/parquet-go/parquet-go"
)

// RedFlagRecord is the flat Parquet projection of one red flag.
type RedFlagRecord struct {
	// FlagID is the deterministic identifier of the flag
	FlagID string `parquet:"flag_id,snappy"`

	// FlagType identifies which detector produced the flag
	FlagType string `parquet:"flag_type,snappy"`

	// Severity is the flag severity (critical, high, medium)
	Severity string `parquet:"severity,snappy"`

	// Title is the short human-readable headline
	Title string `parquet:"title,snappy"`

	// Description is the full explanation text
	Description string `parquet:"description,snappy"`

	// EntityType is the kind of row the flag points back to
	EntityType string `parquet:"entity_type,snappy"`

	// EntityID references the underlying row
	EntityID string `parquet:"entity_id,snappy"`

	// ProjectName is the project the flagged row belongs to
	ProjectName string `parquet:"project_name,snappy"`

	// AssignedTo is the owner of the flagged row (nullable)
	AssignedTo *string `parquet:"assigned_to,optional,snappy"`

	// EstimatedHours is the estimate behind the flag metrics (nullable)
	EstimatedHours *float64 `parquet:"estimated_hours,optional,snappy"`

	// LoggedHours is the summed effort behind the flag metrics
	LoggedHours float64 `parquet:"logged_hours,snappy"`

	// EffortPercent is logged effort as a share of the estimate
	EffortPercent float64 `parquet:"effort_percent,snappy"`

	// CreatedAt anchors the flag in time (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// FocusTaskRecord is the flat Parquet projection of one ranked focus task.
type FocusTaskRecord struct {
	// ItemID is the work item identifier
	ItemID string `parquet:"item_id,snappy"`

	// ItemName is the work item name
	ItemName string `parquet:"item_name,snappy"`

	// ProjectName is the project the item belongs to
	ProjectName string `parquet:"project_name,snappy"`

	// Status is the item's lifecycle state
	Status string `parquet:"status,snappy"`

	// UrgencyScore is the computed ranking score
	UrgencyScore float64 `parquet:"urgency_score,snappy"`

	// UrgencyReason is the short label explaining the score
	UrgencyReason string `parquet:"urgency_reason,snappy"`

	// Category is the score band the task landed in
	Category string `parquet:"category,snappy"`

	// RiskLevel is the item's deadline risk level
	RiskLevel string `parquet:"risk_level,snappy"`

	// HoursLogged is the summed logged effort
	HoursLogged float64 `parquet:"hours_logged,snappy"`

	// DueDate is the item's due date (nullable, stored as TIMESTAMP with nanosecond precision)
	DueDate *time.Time `parquet:"due_date,optional,snappy"`

	// PriorityStars is the item's priority rating
	PriorityStars float64 `parquet:"priority_stars,snappy"`
}

// ConvertRedFlagRecords converts schema red flags to their Parquet projections.
func ConvertRedFlagRecords(flags []schema.RedFlag) []RedFlagRecord {
	records := make([]RedFlagRecord, len(flags))
	for i, f := range flags {
		rec := RedFlagRecord{
			FlagID:      f.ID,
			FlagType:    string(f.Type),
			Severity:    string(f.Severity),
			Title:       f.Title,
			Description: f.Description,
			EntityType:  f.RelatedEntity.Type,
			EntityID:    f.RelatedEntity.ID,
			ProjectName: f.ProjectName,
			CreatedAt:   f.CreatedAt,
		}
		if f.AssignedTo != "" {
			assigned := f.AssignedTo
			rec.AssignedTo = &assigned
		}
		if f.Metrics != nil {
			rec.EstimatedHours = f.Metrics.EstimatedHours
			rec.LoggedHours = f.Metrics.LoggedHours
			rec.EffortPercent = f.Metrics.Percent
		}
		records[i] = rec
	}
	return records
}

// ConvertFocusTaskRecords converts ranked focus tasks to their Parquet projections.
func ConvertFocusTaskRecords(tasks []schema.FocusTask) []FocusTaskRecord {
	records := make([]FocusTaskRecord, len(tasks))
	for i, task := range tasks {
		records[i] = FocusTaskRecord{
			ItemID:        task.Item.ID,
			ItemName:      task.Item.Name,
			ProjectName:   task.Item.Project,
			Status:        string(task.Item.Status),
			UrgencyScore:  task.UrgencyScore,
			UrgencyReason: task.UrgencyReason,
			Category:      string(task.Category),
			RiskLevel:     string(task.DeadlineRisk.Level),
			HoursLogged:   task.HoursLogged,
			DueDate:       task.Item.DueDate,
			PriorityStars: task.Item.PriorityStars,
		}
	}
	return records
}

// WriteRedFlagsParquet writes a slice of RedFlagRecord structs to a Parquet file.
func WriteRedFlagsParquet(data []RedFlagRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RedFlagRecord struct tags
	writer := parquet.NewGenericWriter[RedFlagRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteFocusQueueParquet writes a slice of FocusTaskRecord structs to a Parquet file.
func WriteFocusQueueParquet(data []FocusTaskRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[FocusTaskRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
