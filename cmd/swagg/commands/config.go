package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/swagg-dev/swagg/generator"
	"github.com/swagg-dev/swagg/parser"
	"go.yaml.in/yaml/v4"
)

// defaultDebounce is how long watch mode waits for a burst of file events
// to settle before regenerating.
const defaultDebounce = 200 * time.Millisecond

// GenerateConfig captures all inputs of the generate command after merging
// defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	Input         string        `yaml:"input"`
	Out           string        `yaml:"out"`
	Package       string        `yaml:"package"`
	Runtime       string        `yaml:"runtime"`
	SingleFile    bool          `yaml:"single_file"`
	FileName      string        `yaml:"file_name"`
	Strict        bool          `yaml:"strict"`
	Validate      bool          `yaml:"validate"`
	MaxArrayDepth int           `yaml:"max_array_depth"`
	Watch         bool          `yaml:"watch"`
	Debounce      time.Duration `yaml:"debounce"`

	ConfigPath string `yaml:"-"`
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{Debounce: defaultDebounce}
}

// resolveGenerateConfig merges defaults, the --config file and the flags
// of cmd, in that order of precedence from lowest to highest.
func resolveGenerateConfig(cmd *cobra.Command, args []string) (*GenerateConfig, error) {
	cfg := defaultGenerateConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("config: %v", err))
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return newUsageError(fmt.Sprintf("config %s: %v", path, err))
	}
	return nil
}

// applyGenerateFlagOverrides copies the flags the user set explicitly.
// Flags a command does not define are skipped.
func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	strs := map[string]*string{
		"out":       &cfg.Out,
		"package":   &cfg.Package,
		"runtime":   &cfg.Runtime,
		"file-name": &cfg.FileName,
	}
	for name, dst := range strs {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = value
	}

	bools := map[string]*bool{
		"single-file": &cfg.SingleFile,
		"strict":      &cfg.Strict,
		"validate":    &cfg.Validate,
		"watch":       &cfg.Watch,
	}
	for name, dst := range bools {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = value
	}

	if flags.Lookup("max-array-depth") != nil && flags.Changed("max-array-depth") {
		value, err := flags.GetInt("max-array-depth")
		if err != nil {
			return err
		}
		cfg.MaxArrayDepth = value
	}
	if flags.Lookup("debounce") != nil && flags.Changed("debounce") {
		value, err := flags.GetDuration("debounce")
		if err != nil {
			return err
		}
		cfg.Debounce = value
	}
	return nil
}

func (c *GenerateConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Out = strings.TrimSpace(c.Out)
	c.Package = strings.TrimSpace(c.Package)
	c.Runtime = strings.TrimSpace(c.Runtime)
	c.FileName = strings.TrimSpace(c.FileName)
	if c.FileName != "" {
		c.SingleFile = true
	}
	if c.Out == "" {
		c.Out = c.Package
		if c.Out == "" {
			c.Out = "api"
		}
	}
	if c.Debounce <= 0 {
		c.Debounce = defaultDebounce
	}
}

func (c *GenerateConfig) validate() error {
	if c.Input == "" {
		return newUsageError("a spec file is required (argument or config input)")
	}
	if c.MaxArrayDepth < 0 {
		return newUsageError(fmt.Sprintf("--max-array-depth must not be negative, got %d", c.MaxArrayDepth))
	}
	return nil
}

// parseOptions returns the parser options for the configured input.
func (c *GenerateConfig) parseOptions(logger parser.Logger) []parser.Option {
	return []parser.Option{
		parser.WithFilePath(c.Input),
		parser.WithValidateStructure(c.Validate),
		parser.WithLogger(logger),
	}
}

// generatorOptions maps the configuration onto generator options. Unset
// values keep the generator defaults.
func (c *GenerateConfig) generatorOptions(ctx context.Context, logger parser.Logger) []generator.Option {
	opts := []generator.Option{
		generator.WithLogger(logger),
		generator.WithContext(ctx),
		generator.WithStrict(c.Strict),
	}
	if c.Package != "" {
		opts = append(opts, generator.WithPackageName(c.Package))
	}
	if c.Runtime != "" {
		opts = append(opts, generator.WithRuntimeImport(c.Runtime))
	}
	if c.SingleFile {
		opts = append(opts, generator.WithSingleFile(c.FileName))
	}
	if c.MaxArrayDepth > 0 {
		opts = append(opts, generator.WithMaxArrayDepth(c.MaxArrayDepth))
	}
	return opts
}
