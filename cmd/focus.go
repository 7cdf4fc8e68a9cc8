package cmd

import (
	"github.com/cosmodesk/taskpulse/core"
	"github.com/spf13/cobra"
)

// focusCmd builds a ranked daily focus queue for one assignee.
var focusCmd = &cobra.Command{
	Use:   "focus <assignee>",
	Short: "Show one assignee's open items ranked by urgency.",
	Long: `Build a daily focus queue: the assignee's open work items ranked
from most to least urgent.

Ranking order:
- Overdue items first
- Items due today
- Items due this week with high deadline risk
- Items already in progress
- High-priority items
- Everything else

Each entry carries its deadline risk assessment so you can see why it ranks
where it does.

Examples:
  # What should alice work on today?
  taskpulse focus alice

  # Top five only, as JSON
  taskpulse focus alice --limit 5 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		executeReport(core.ExecuteFocusQueue, "Cannot build focus queue")
	},
}
