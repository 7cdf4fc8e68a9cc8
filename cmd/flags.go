package cmd

import (
	"github.com/cosmodesk/taskpulse/core"
	"github.com/spf13/cobra"
)

// flagsCmd scans open work items for red flags.
var flagsCmd = &cobra.Command{
	Use:   "flags [project]",
	Short: "Show red flags across open work items, most severe first.",
	Long: `Scan open work items and surface everything that needs attention.

Detects six kinds of red flags:
- Deadline risks - items unlikely to finish before their due date
- Effort overruns - items where logged hours blew past the estimate
- Blocked items - items stuck behind unfinished dependencies
- Stale items - in-progress items with no recent activity
- Unassigned items - high-priority items nobody owns
- Aging approvals - task requests waiting too long for review

Flags are sorted by severity (critical, high, medium), ties broken by age.

Examples:
  # Scan all projects
  taskpulse flags

  # Scan one project
  taskpulse flags website-redesign

  # Export findings to CSV for tracking
  taskpulse flags --output csv --output-file flags.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		executeReport(core.ExecuteRedFlags, "Cannot run red flag scan")
	},
}
