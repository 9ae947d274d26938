package highway

import "github.com/swagg-dev/swagg/parser"

// MaxArrayDepth is the default bound on nested arrays ([][]...T).
const MaxArrayDepth = 8

// Option configures a Builder.
type Option func(*config)

type config struct {
	logger        parser.Logger
	maxArrayDepth int
}

func defaultConfig() config {
	return config{
		logger:        parser.NopLogger{},
		maxArrayDepth: MaxArrayDepth,
	}
}

// WithLogger sets the logger for build progress. Nil is ignored.
func WithLogger(l parser.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxArrayDepth sets the array nesting bound.
// If depth is not positive, it is ignored and MaxArrayDepth is kept.
func WithMaxArrayDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxArrayDepth = depth
		}
	}
}
