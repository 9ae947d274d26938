package generator

import (
	"context"
	"go/token"

	"github.com/swagg-dev/swagg/emit"
	"github.com/swagg-dev/swagg/oaserrors"
	"github.com/swagg-dev/swagg/parser"
)

// Option configures a generate operation.
type Option func(*generateConfig) error

type generateConfig struct {
	logger        parser.Logger
	ctx           context.Context
	packageName   string
	runtime       string
	strict        bool
	singleFile    bool
	fileName      string
	maxArrayDepth int
}

func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		logger:      parser.NopLogger{},
		packageName: emit.DefaultPackage,
		runtime:     emit.DefaultRuntime,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets the logger passed to every phase. Nil is ignored.
func WithLogger(l parser.Logger) Option {
	return func(cfg *generateConfig) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// WithContext sets the context checked between walk steps.
func WithContext(ctx context.Context) Option {
	return func(cfg *generateConfig) error {
		cfg.ctx = ctx
		return nil
	}
}

// WithPackageName sets the package of the generated code.
// Default: "api"
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if !token.IsIdentifier(name) {
			return &oaserrors.ConfigError{Option: "package", Value: name, Message: "must be a Go identifier"}
		}
		cfg.packageName = name
		return nil
	}
}

// WithRuntimeImport sets the import path of the runtime package the
// generated code binds against.
// Default: emit.DefaultRuntime
func WithRuntimeImport(path string) Option {
	return func(cfg *generateConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "runtime", Message: "import path cannot be empty"}
		}
		cfg.runtime = path
		return nil
	}
}

// WithStrict makes any warning fail the generation.
// Default: false
func WithStrict(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strict = enabled
		return nil
	}
}

// WithSingleFile renders the whole package into one file called name
// instead of one file per module. An empty name uses "<package>.go".
func WithSingleFile(name string) Option {
	return func(cfg *generateConfig) error {
		cfg.singleFile = true
		cfg.fileName = name
		return nil
	}
}

// WithMaxArrayDepth limits nested arrays; deeper schemas are skipped with
// a warning.
// Default: 8
func WithMaxArrayDepth(depth int) Option {
	return func(cfg *generateConfig) error {
		if depth < 1 {
			return &oaserrors.ConfigError{Option: "max array depth", Value: depth, Message: "must be positive"}
		}
		cfg.maxArrayDepth = depth
		return nil
	}
}
