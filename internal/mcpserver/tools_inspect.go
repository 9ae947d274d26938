package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/swagg-dev/swagg/generator"
)

type inspectInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The OpenAPI 3 document to inspect"`
	PackageName string    `json:"package_name,omitempty" jsonschema:"Go package name used for naming (default: api)"`
}

type inspectOutput struct {
	Package    string                       `json:"package"`
	Title      string                       `json:"title,omitempty"`
	Version    string                       `json:"version"`
	Components []generator.ComponentSummary `json:"components"`
	Routes     []generator.RouteSummary     `json:"routes"`
	Warnings   []warningInfo                `json:"warnings,omitempty"`
}

// warningInfo is the wire form of a generator issue.
type warningInfo struct {
	Path      string `json:"path"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	Component string `json:"component,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

func warningInfos(list []*generator.Issue) []warningInfo {
	out := makeSlice[warningInfo](len(list))
	for _, w := range list {
		out = append(out, warningInfo{
			Path:      w.Path,
			Message:   w.Message,
			Severity:  w.Severity.String(),
			Component: w.Component,
			Detail:    w.Detail,
		})
	}
	return out
}

func (t *tools) handleInspect(ctx context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	parsed, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	result, err := t.generate(ctx, parsed.Document, generateSettings{packageName: input.PackageName})
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	summary := result.Summary()
	output := inspectOutput{
		Package:    summary.Package,
		Version:    parsed.Version,
		Components: summary.Components,
		Routes:     summary.Routes,
		Warnings:   warningInfos(summary.Warnings),
	}
	if info := parsed.Document.Info; info != nil {
		output.Title = info.Title
	}
	return nil, output, nil
}
