package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cosmodesk/taskpulse/internal/contract"
	"github.com/cosmodesk/taskpulse/internal/parquet"
)

// ExecuteSnapshotExport writes the current red flag report, and the
// focus queue when an assignee is set, to Parquet files next to the
// configured output path.
func ExecuteSnapshotExport(ctx context.Context, cfg *contract.Config, store contract.ItemStore) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	now := time.Now().UTC()

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total work items: %d\n", status.ItemCount)
	fmt.Printf("Total work logs: %d\n", status.LogCount)

	flags, err := BuildRedFlagReport(ctx, store, cfg.Project, now)
	if err != nil {
		return fmt.Errorf("failed to build red flag report: %w", err)
	}

	flagsFile := cfg.OutputFile + ".red_flags.parquet"
	if err := parquet.WriteRedFlagsParquet(parquet.ConvertRedFlagRecords(flags), flagsFile); err != nil {
		return fmt.Errorf("failed to write red flags: %w", err)
	}
	fmt.Printf("Exported %d red flags to: %s\n", len(flags), flagsFile)

	if cfg.Assignee != "" {
		tasks, err := BuildFocusQueueReport(ctx, store, cfg.Assignee, now)
		if err != nil {
			return fmt.Errorf("failed to build focus queue: %w", err)
		}
		focusFile := cfg.OutputFile + ".focus_queue.parquet"
		if err := parquet.WriteFocusQueueParquet(parquet.ConvertFocusTaskRecords(tasks), focusFile); err != nil {
			return fmt.Errorf("failed to write focus queue: %w", err)
		}
		fmt.Printf("Exported %d focus tasks to: %s\n", len(tasks), focusFile)
	}

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
