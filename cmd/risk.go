package cmd

import (
	"github.com/cosmodesk/taskpulse/core"
	"github.com/spf13/cobra"
)

// riskCmd shows the full deadline risk assessment for one work item.
var riskCmd = &cobra.Command{
	Use:   "risk <item-id>",
	Short: "Show the deadline risk assessment for a single work item.",
	Long: `Compute and display the full deadline risk picture for one work item.

Shows:
- Risk level (critical, high, medium, low, none) with the reason
- Days left until the due date
- Hours logged, estimated, and remaining
- Effort and completion percentages
- Whether the item has overrun its estimate

When an item has no estimate, remaining hours are projected from the
completion rate of its sibling items where possible.

Examples:
  # Assess one item
  taskpulse risk subtask-42

  # Machine-readable output
  taskpulse risk subtask-42 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		executeReport(core.ExecuteItemRisk, "Cannot assess item risk")
	},
}
