package mcpserver

import (
	"os"
	"strconv"
	"time"

	"github.com/swagg-dev/swagg/parser"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// MaxInlineSize caps inline spec content in bytes.
	MaxInlineSize int64

	// Generate tool defaults.
	Package string
	Runtime string
	Strict  bool
}

// cfg is the active server configuration. Run reloads it with the
// server's logger.
var cfg = loadConfig(parser.NopLogger{})

// loadConfig reads configuration from SWAGG_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig(logger parser.Logger) *serverConfig {
	e := envReader{logger: logger}
	return &serverConfig{
		CacheEnabled:       e.bool("SWAGG_CACHE_ENABLED", true),
		CacheMaxSize:       e.int("SWAGG_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       e.duration("SWAGG_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    e.duration("SWAGG_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: e.duration("SWAGG_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      int64(e.int("SWAGG_MAX_INLINE_SIZE", 10*1024*1024)),
		Package:            os.Getenv("SWAGG_PACKAGE"),
		Runtime:            os.Getenv("SWAGG_RUNTIME"),
		Strict:             e.bool("SWAGG_STRICT", false),
	}
}

type envReader struct {
	logger parser.Logger
}

func (e envReader) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.logger.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func (e envReader) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		e.logger.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func (e envReader) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.logger.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
