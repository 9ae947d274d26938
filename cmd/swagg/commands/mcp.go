package commands

import (
	"github.com/spf13/cobra"
	"github.com/swagg-dev/swagg/internal/mcpserver"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the generate and inspect tools over MCP on stdio",
		Long: "Start a Model Context Protocol server on stdin/stdout. " +
			"Server defaults are read from SWAGG_* environment variables.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context(), a.logger)
		},
	}
}
