package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/swagg-dev/swagg/parser"
)

// specInput is the document argument shared by the tools.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI 3 file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI 3 document content (JSON or YAML)"`
}

var errSpecInput = errors.New("exactly one of file or content must be provided")

// cacheKey identifies the document s refers to: the absolute path and
// modification time of a file, or the SHA-256 of inline content. It is
// empty when s cannot be cached.
func (s specInput) cacheKey() string {
	if s.Content != "" {
		sum := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(sum[:])
	}
	abs, err := filepath.Abs(s.File)
	if err != nil {
		return ""
	}
	info, err := os.Stat(abs)
	if err != nil {
		return ""
	}
	return "file:" + abs + ":" + strconv.FormatInt(info.ModTime().UnixNano(), 10)
}

func (s specInput) ttl() time.Duration {
	if s.File != "" {
		return cfg.CacheFileTTL
	}
	return cfg.CacheContentTTL
}

// resolve parses the document. Results are cached unless caching is
// disabled or extra parser options are given.
func (s specInput) resolve(extra ...parser.Option) (*parser.ParseResult, error) {
	if (s.File == "") == (s.Content == "") {
		return nil, errSpecInput
	}
	if size := int64(len(s.Content)); size > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set SWAGG_MAX_INLINE_SIZE to increase",
			size, cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled && len(extra) == 0 {
		key = s.cacheKey()
	}
	if key != "" {
		if hit := documents.get(key); hit != nil {
			return hit, nil
		}
	}

	opts := []parser.Option{parser.WithFilePath(s.File)}
	if s.Content != "" {
		opts = []parser.Option{parser.WithReader(strings.NewReader(s.Content)), parser.WithSourceName("inline")}
	}
	result, err := parser.ParseWithOptions(append(opts, extra...)...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		documents.put(key, result, s.ttl())
	}
	return result, nil
}
