package cmd

import (
	"github.com/cosmodesk/taskpulse/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Taskpulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to query red flags, focus queues, and item risk via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdio clean for the protocol; setup logs go to stderr only.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		defer closeStore()
		return mcp.StartMCPServer(rootCtx, cfg, itemStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
