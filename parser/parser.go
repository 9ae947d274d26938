package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/swagg-dev/swagg/internal/options"
	"github.com/swagg-dev/swagg/oaserrors"
	"go.yaml.in/yaml/v4"
)

// DefaultMaxFileSize bounds the size of a document read from a file or reader.
const DefaultMaxFileSize int64 = 64 << 20

// ParseResult is the outcome of a successful parse.
type ParseResult struct {
	// Document is the order-preserving document model.
	Document *Document
	// SourcePath is the file path, or "ParseBytes"/"ParseReader".
	SourcePath string
	// Version is the openapi version string of the document.
	Version string
	// Data holds the raw input, kept for structural validation.
	Data []byte
}

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

type parseConfig struct {
	filePath *string
	reader   io.Reader
	bytes    []byte

	validateStructure bool
	maxFileSize       int64
	logger            Logger
	sourceName        *string
}

// ParseWithOptions parses an OpenAPI 3 document using functional options.
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithValidateStructure(true),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	var (
		data   []byte
		source string
	)
	switch {
	case cfg.filePath != nil:
		source = *cfg.filePath
		data, err = readLimited(source, cfg.maxFileSize)
	case cfg.reader != nil:
		source = "ParseReader"
		data, err = io.ReadAll(io.LimitReader(cfg.reader, cfg.maxFileSize+1))
		if err == nil && int64(len(data)) > cfg.maxFileSize {
			err = &oaserrors.ResourceLimitError{ResourceType: "file size", Limit: cfg.maxFileSize}
		}
	default:
		source = "ParseBytes"
		data = cfg.bytes
	}
	if cfg.sourceName != nil {
		source = *cfg.sourceName
	}
	if err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "failed to read input", Cause: err}
	}

	log := cfg.logger.With("source", source)
	log.Debug("parsing document", "bytes", len(data))

	doc, err := decode(data, source)
	if err != nil {
		return nil, err
	}

	if cfg.validateStructure {
		if err := ValidateStructure(data); err != nil {
			return nil, &oaserrors.ParseError{Path: source, Message: "document failed structural validation", Cause: err}
		}
		log.Debug("structural validation passed")
	}

	log.Info("parsed document",
		"version", doc.OpenAPI,
		"paths", doc.Paths.Len(),
		"schemas", doc.Components.schemaCount(),
	)
	return &ParseResult{Document: doc, SourcePath: source, Version: doc.OpenAPI, Data: data}, nil
}

// Parse decodes a YAML or JSON document held in memory.
func Parse(data []byte) (*Document, error) {
	res, err := ParseWithOptions(WithBytes(data))
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

// ParseFile reads and decodes the document at path.
func ParseFile(path string) (*Document, error) {
	res, err := ParseWithOptions(WithFilePath(path))
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

func decode(data []byte, source string) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: source, Message: "document is empty"}
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		perr := &oaserrors.ParseError{Path: source, Message: "invalid document", Cause: err}
		var loadErrs *yaml.LoadErrors
		if errors.As(err, &loadErrs) && len(loadErrs.Errors) > 0 {
			perr.Line = loadErrs.Errors[0].Line
			perr.Column = loadErrs.Errors[0].Column
		}
		return nil, perr
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		msg := "missing openapi version field"
		if doc.OpenAPI != "" {
			msg = fmt.Sprintf("unsupported openapi version %q: only 3.x documents are supported", doc.OpenAPI)
		}
		return nil, &oaserrors.ParseError{Path: source, Message: msg}
	}
	return &doc, nil
}

func readLimited(path string, limit int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > limit {
		return nil, &oaserrors.ResourceLimitError{ResourceType: "file size", Limit: limit, Actual: info.Size()}
	}
	return os.ReadFile(path)
}

func (c *Components) schemaCount() int {
	if c == nil {
		return 0
	}
	return c.Schemas.Len()
}

func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		maxFileSize: DefaultMaxFileSize,
		logger:      NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := options.ExactlyOne("input source (use WithFilePath, WithReader, or WithBytes)",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithValidateStructure enables OpenAPI structural validation of the input.
// Default: false
func WithValidateStructure(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.validateStructure = enabled
		return nil
	}
}

// WithMaxFileSize sets the maximum accepted input size in bytes.
// Default: DefaultMaxFileSize
func WithMaxFileSize(n int64) Option {
	return func(cfg *parseConfig) error {
		if n <= 0 {
			return fmt.Errorf("parser: max file size must be positive, got %d", n)
		}
		cfg.maxFileSize = n
		return nil
	}
}

// WithLogger sets the logger used while parsing.
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

// WithSourceName overrides SourcePath in the result and in errors.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
