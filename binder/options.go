package binder

import "github.com/swagg-dev/swagg/parser"

// Option configures a Binder.
type Option func(*config)

type config struct {
	logger parser.Logger
}

// WithLogger sets the logger for binding progress. Nil is ignored.
func WithLogger(l parser.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
