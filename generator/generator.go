package generator

import (
	"fmt"
	"time"

	"github.com/swagg-dev/swagg/binder"
	"github.com/swagg-dev/swagg/emit"
	"github.com/swagg-dev/swagg/highway"
	"github.com/swagg-dev/swagg/internal/issues"
	"github.com/swagg-dev/swagg/internal/severity"
	"github.com/swagg-dev/swagg/parser"
	"github.com/swagg-dev/swagg/render"
	"github.com/swagg-dev/swagg/walker"
)

// Issue is a non-fatal finding of the generation.
type Issue = issues.Issue

// Result contains the results of generating code from a document.
type Result struct {
	// Tree is the emission tree, the primary artifact.
	Tree *emit.Tree
	// Files is Tree rendered to Go source.
	Files []render.File
	// PackageName is the Go package name used in generation
	PackageName string
	// Warnings lists the skipped schemas, payloads and operations
	Warnings []*Issue
	// WarningCount is the number of warnings
	WarningCount int
	// Components is the count of types taken from the component graph
	Components int
	// Operations is the count of bound operations
	Operations int
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration

	graph *highway.Graph
	ops   []*binder.Operation
}

// HasWarnings returns true if there are any warnings
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// File returns the rendered file with the given name, or nil if not found
func (r *Result) File(name string) *render.File {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generate builds the component graph of doc, binds its operations and
// returns the emission tree together with its rendering.
//
// Skipped items are reported in Result.Warnings; with WithStrict they fail
// the generation instead. Errors are *oaserrors.GenerationError values
// wrapping the typed error of the failing phase.
func Generate(doc *parser.Document, opts ...Option) (*Result, error) {
	start := time.Now()
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}
	hook, _, err := run(doc, cfg, nil)
	if err != nil {
		return nil, err
	}
	warnings := hook.collected()

	var files []render.File
	if cfg.singleFile {
		f, err := render.RenderSingle(hook.tree, cfg.fileName)
		if err != nil {
			return nil, err
		}
		files = []render.File{f}
	} else if files, err = render.Render(hook.tree); err != nil {
		return nil, err
	}

	result := &Result{
		Tree:         hook.tree,
		Files:        files,
		PackageName:  cfg.packageName,
		Warnings:     warnings,
		WarningCount: issues.CountAtLeast(warnings, severity.SeverityWarning),
		Components:   hook.graph.Len(),
		Operations:   len(hook.ops),
		GenerateTime: time.Since(start),
		graph:        hook.graph,
		ops:          hook.ops,
	}
	cfg.logger.Info("generation finished",
		"components", result.Components,
		"operations", result.Operations,
		"warnings", result.WarningCount,
		"files", len(files))
	return result, nil
}

// GenerateWithHooks walks doc with the built-in binding hook followed by
// hooks, in that order, and returns every artifact emitted at Finish. The
// binding hook emits the primary tree as "api". The returned issues are
// the warnings of the binding hook, the same list Generate reports.
//
// The first hook error aborts the walk and no artifacts are returned; the
// warnings collected up to that point still are.
func GenerateWithHooks(doc *parser.Document, hooks []walker.Hook, opts ...Option) (map[string]*emit.Tree, []*Issue, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("generator: invalid options: %w", err)
	}
	hook, artifacts, err := run(doc, cfg, hooks)
	if hook == nil {
		return nil, nil, err
	}
	return artifacts, hook.collected(), err
}

func run(doc *parser.Document, cfg *generateConfig, hooks []walker.Hook) (*bindingHook, map[string]*emit.Tree, error) {
	if doc == nil {
		return nil, nil, fmt.Errorf("generator: document is nil")
	}
	hook := newBindingHook(doc, cfg)
	all := append([]walker.Hook{hook}, hooks...)

	walkOpts := []walker.Option{walker.WithLogger(cfg.logger)}
	if cfg.ctx != nil {
		walkOpts = append(walkOpts, walker.WithUserContext(cfg.ctx))
	}
	artifacts, err := walker.Run(doc, all, walkOpts...)
	if err != nil {
		return hook, nil, err
	}
	return hook, artifacts, nil
}
