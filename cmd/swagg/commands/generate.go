package commands

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/swagg-dev/swagg/generator"
	"github.com/swagg-dev/swagg/internal/cliutil"
	"github.com/swagg-dev/swagg/internal/severity"
	"github.com/swagg-dev/swagg/parser"
)

var generateRunner = runGenerate

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [flags] <spec>",
		Short: "Generate Go bindings from an OpenAPI 3 document",
		Long: "Generate Go bindings from an OpenAPI 3 document. " +
			"Options can be provided via flags, a config file, or defaults.",
		Example: strings.TrimSpace(`  swagg generate -o ./petstore -p petstore openapi.yaml
  swagg --config swagg.yaml generate --strict
  swagg generate --watch openapi.yaml`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd, args)
			if err != nil {
				return err
			}
			if cfg.Watch {
				return watchAndGenerate(cmd.Context(), cfg, a.logger, cmd.OutOrStdout())
			}
			return generateRunner(cmd.Context(), cfg, a.logger, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringP("out", "o", "", "Output directory (defaults to the package name)")
	flags.StringP("package", "p", "", "Go package name of the generated code (default \"api\")")
	flags.String("runtime", "", "Import path of the runtime package")
	flags.Bool("single-file", false, "Write all declarations to one file")
	flags.String("file-name", "", "File name used with --single-file (default \"<package>.go\")")
	flags.Bool("strict", false, "Fail when any schema, payload or operation is skipped")
	flags.Bool("validate", false, "Validate the document structure before generating")
	flags.Int("max-array-depth", 0, "Maximum nesting of array schemas (default 8)")
	flags.Bool("watch", false, "Regenerate whenever the spec file changes")
	flags.Duration("debounce", defaultDebounce, "Quiet period before regenerating in watch mode")

	return cmd
}

// runGenerate parses the configured spec, generates the bindings and
// writes them to cfg.Out. Warnings go to w.
func runGenerate(ctx context.Context, cfg *GenerateConfig, logger parser.Logger, w io.Writer) error {
	parsed, err := parser.ParseWithOptions(cfg.parseOptions(logger)...)
	if err != nil {
		return err
	}

	result, err := generator.Generate(parsed.Document, cfg.generatorOptions(ctx, logger)...)
	if err != nil {
		return err
	}
	cliutil.WriteIssues(w, result.Warnings, severity.SeverityWarning)

	if err := result.WriteFiles(cfg.Out); err != nil {
		return err
	}
	cliutil.Writef(w, "Generated %d file(s) in %s: %d component(s), %d operation(s), %d warning(s) (%s)\n",
		len(result.Files), cfg.Out, result.Components, result.Operations, result.WarningCount,
		result.GenerateTime.Round(time.Microsecond))
	return nil
}
