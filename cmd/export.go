package cmd

import (
	"github.com/cosmodesk/taskpulse/core"
	"github.com/cosmodesk/taskpulse/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportCmd exports report snapshots to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export [project]",
	Short: "Export report snapshots to Parquet for BI tools and analytics",
	Long: `Export the current red flag report (and optionally a focus queue)
to Parquet format for use with analytics tools.

Exports:
- Red flags - every detected flag with severity, metrics, and timestamps
- Focus queue - ranked tasks for one assignee (only with --assignee)

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all red flags
  taskpulse export --output-file snapshot

  # One project plus alice's queue
  taskpulse export website-redesign --assignee alice --output-file snapshot

  # Use with DuckDB for analysis
  taskpulse export --output-file snapshot
  duckdb -c "SELECT * FROM read_parquet('snapshot.red_flags.parquet') LIMIT 10"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		executeReport(core.ExecuteSnapshotExport, "Failed to export snapshot")
	},
}

func init() {
	exportCmd.Flags().String("assignee", "", "Also export this assignee's focus queue")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}
}
