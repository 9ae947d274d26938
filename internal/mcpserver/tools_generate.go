package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/swagg-dev/swagg/generator"
	"github.com/swagg-dev/swagg/parser"
)

type generateInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The OpenAPI 3 document to generate code from"`
	PackageName string    `json:"package_name,omitempty" jsonschema:"Go package name for generated code (default: api)"`
	Runtime     string    `json:"runtime,omitempty"      jsonschema:"Import path of the runtime package the generated code binds against"`
	SingleFile  bool      `json:"single_file,omitempty"  jsonschema:"Write all declarations to one file"`
	Strict      bool      `json:"strict,omitempty"       jsonschema:"Fail instead of skipping unsupported schemas, payloads or operations"`
	Validate    bool      `json:"validate,omitempty"     jsonschema:"Validate the document structure before generating"`
	OutputDir   string    `json:"output_dir,omitempty"   jsonschema:"Directory to write generated files to; omit to return the files inline"`
}

type generatedFileInfo struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content string `json:"content,omitempty"`
}

type generateOutput struct {
	OutputDir    string              `json:"output_dir,omitempty"`
	PackageName  string              `json:"package_name"`
	FileCount    int                 `json:"file_count"`
	Files        []generatedFileInfo `json:"files"`
	Components   int                 `json:"components"`
	Operations   int                 `json:"operations"`
	WarningCount int                 `json:"warning_count"`
	Warnings     []warningInfo       `json:"warnings,omitempty"`
}

func (t *tools) handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	var extra []parser.Option
	if input.Validate {
		extra = append(extra, parser.WithValidateStructure(true))
	}
	parsed, err := input.Spec.resolve(extra...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	result, err := t.generate(ctx, parsed.Document, generateSettings{
		packageName: input.PackageName,
		runtime:     input.Runtime,
		singleFile:  input.SingleFile,
		strict:      input.Strict,
	})
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		OutputDir:    input.OutputDir,
		PackageName:  result.PackageName,
		FileCount:    len(result.Files),
		Components:   result.Components,
		Operations:   result.Operations,
		WarningCount: result.WarningCount,
		Warnings:     warningInfos(result.Warnings),
	}

	if input.OutputDir != "" {
		if err := result.WriteFiles(input.OutputDir); err != nil {
			return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
		}
	}

	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		info := generatedFileInfo{Name: f.Name, Size: len(f.Content)}
		if input.OutputDir == "" {
			info.Content = string(f.Content)
		}
		output.Files = append(output.Files, info)
	}

	return nil, output, nil
}

// generateSettings are the tool arguments that map onto generator options.
// Empty values fall back to the server configuration.
type generateSettings struct {
	packageName string
	runtime     string
	singleFile  bool
	strict      bool
}

func (t *tools) generate(ctx context.Context, doc *parser.Document, s generateSettings) (*generator.Result, error) {
	if s.packageName == "" {
		s.packageName = cfg.Package
	}
	if s.runtime == "" {
		s.runtime = cfg.Runtime
	}

	opts := []generator.Option{
		generator.WithContext(ctx),
		generator.WithLogger(t.logger),
		generator.WithStrict(s.strict || cfg.Strict),
	}
	if s.packageName != "" {
		opts = append(opts, generator.WithPackageName(s.packageName))
	}
	if s.runtime != "" {
		opts = append(opts, generator.WithRuntimeImport(s.runtime))
	}
	if s.singleFile {
		opts = append(opts, generator.WithSingleFile(""))
	}
	return generator.Generate(doc, opts...)
}
