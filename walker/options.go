package walker

import (
	"context"

	"github.com/swagg-dev/swagg/parser"
)

// Option configures a Run.
type Option func(*config)

type config struct {
	logger parser.Logger
	ctx    context.Context
}

// WithLogger sets the logger passed to hooks. Nil is ignored.
func WithLogger(l parser.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserContext sets the context for cancellation. The run checks it
// between items and hooks can read it via Context.Context().
func WithUserContext(ctx context.Context) Option {
	return func(c *config) {
		c.ctx = ctx
	}
}
