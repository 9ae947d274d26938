package commands

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
	"github.com/swagg-dev/swagg/generator"
	"github.com/swagg-dev/swagg/internal/cliutil"
	"github.com/swagg-dev/swagg/internal/severity"
	"github.com/swagg-dev/swagg/parser"
)

func newInspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [flags] <spec>",
		Short: "Show the components and routes swagg would generate",
		Long: "Inspect runs the generation pipeline without writing files and prints " +
			"the component graph, the route scopes and every warning.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd, args)
			if err != nil {
				return err
			}
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}
			summary, err := inspect(cmd, cfg, a.logger)
			if err != nil {
				return err
			}
			if asJSON {
				return json.MarshalWrite(cmd.OutOrStdout(), summary, jsontext.WithIndent("  "))
			}
			writeSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("package", "p", "", "Go package name of the generated code (default \"api\")")
	flags.Bool("validate", false, "Validate the document structure before generating")
	flags.Int("max-array-depth", 0, "Maximum nesting of array schemas (default 8)")
	flags.Bool("json", false, "Print the summary as JSON")
	return cmd
}

func inspect(cmd *cobra.Command, cfg *GenerateConfig, logger parser.Logger) (*generator.Summary, error) {
	parsed, err := parser.ParseWithOptions(cfg.parseOptions(logger)...)
	if err != nil {
		return nil, err
	}
	result, err := generator.Generate(parsed.Document, cfg.generatorOptions(cmd.Context(), logger)...)
	if err != nil {
		return nil, err
	}
	return result.Summary(), nil
}

func writeSummary(w io.Writer, s *generator.Summary) {
	cliutil.Writef(w, "Package: %s\n", s.Package)

	cliutil.Writef(w, "\nComponents (%d):\n", len(s.Components))
	for _, c := range s.Components {
		cliutil.Writef(w, "  %-32s %-7s %s\n", c.Name, c.Kind, c.Origin)
	}

	cliutil.Writef(w, "\nRoutes (%d):\n", len(s.Routes))
	for _, r := range s.Routes {
		cliutil.Writef(w, "  %s\n", r.Path)
		for _, op := range r.Operations {
			cliutil.Writef(w, "    %-7s %s -> %s %v\n", op.Method, op.Name, op.Response, op.Statuses)
		}
	}

	if len(s.Warnings) > 0 {
		cliutil.Writef(w, "\nWarnings (%d):\n", len(s.Warnings))
		cliutil.WriteIssues(w, s.Warnings, severity.SeverityInfo)
	}
}
