package commands

import (
	"github.com/spf13/cobra"
	"github.com/swagg-dev/swagg"
	"github.com/swagg-dev/swagg/internal/cliutil"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				cliutil.Writef(cmd.OutOrStdout(), "%s", swagg.BuildInfo())
				return nil
			}
			cliutil.Writef(cmd.OutOrStdout(), "swagg %s\n", swagg.Version())
			return nil
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Include commit, build time and Go version")
	return cmd
}
