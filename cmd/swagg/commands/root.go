// Package commands implements the swagg command line.
package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/swagg-dev/swagg/parser"
)

// app carries the state shared by all subcommands.
type app struct {
	logger parser.Logger
}

// Execute runs the swagg CLI.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	a := &app{logger: parser.NopLogger{}}

	cmd := &cobra.Command{
		Use:           "swagg",
		Short:         "Generate typed Go HTTP bindings from OpenAPI 3 documents",
		Long:          "swagg turns an OpenAPI 3 document into Go types, per-operation response unions and a service type that serves handlers on net/http.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := cmd.Flags().GetString("log-level")
			if err != nil {
				return err
			}
			level, err := zerolog.ParseLevel(raw)
			if err != nil || level == zerolog.NoLevel {
				return newUsageError(fmt.Sprintf("invalid --log-level %q (allowed: trace, debug, info, warn, error, disabled)", raw))
			}
			a.logger = newLogger(cmd.ErrOrStderr(), level)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML or JSON)")
	cmd.PersistentFlags().String("log-level", "warn", "Log level written to stderr")

	for _, sub := range []*cobra.Command{
		newGenerateCmd(a),
		newInspectCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	} {
		sub.SetFlagErrorFunc(flagError)
		cmd.AddCommand(sub)
	}
	cmd.SetFlagErrorFunc(flagError)

	return cmd
}

// flagError converts cobra flag errors into usage errors that carry the
// command's help text.
func flagError(c *cobra.Command, err error) error {
	return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
}
