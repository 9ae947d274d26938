package generator

import (
	"fmt"

	"github.com/swagg-dev/swagg/binder"
	"github.com/swagg-dev/swagg/emit"
	"github.com/swagg-dev/swagg/highway"
	"github.com/swagg-dev/swagg/internal/issues"
	"github.com/swagg-dev/swagg/oaserrors"
	"github.com/swagg-dev/swagg/parser"
	"github.com/swagg-dev/swagg/walker"
)

// ArtifactName is the name under which the binding hook emits its tree.
const ArtifactName = "api"

// bindingHook feeds the walk into a highway.Builder and, at Finish, binds
// the operations and emits the tree.
type bindingHook struct {
	walker.NopHook

	cfg     *generateConfig
	builder *highway.Builder

	graph    *highway.Graph
	ops      []*binder.Operation
	tree     *emit.Tree
	warnings []*issues.Issue
	finished bool
}

func newBindingHook(doc *parser.Document, cfg *generateConfig) *bindingHook {
	opts := []highway.Option{highway.WithLogger(cfg.logger)}
	if cfg.maxArrayDepth > 0 {
		opts = append(opts, highway.WithMaxArrayDepth(cfg.maxArrayDepth))
	}
	return &bindingHook{cfg: cfg, builder: highway.NewBuilder(doc, opts...)}
}

func (h *bindingHook) Name() string { return "binding" }

func (h *bindingHook) OnParameter(_ *walker.Context, name string, p *parser.Parameter) error {
	return h.builder.AddParameter(name, p)
}

func (h *bindingHook) OnRequestBody(_ *walker.Context, name string, rb *parser.RequestBody) error {
	return h.builder.AddRequestBody(name, rb)
}

func (h *bindingHook) OnResponse(_ *walker.Context, name string, r *parser.Response) error {
	return h.builder.AddResponse(name, r)
}

func (h *bindingHook) OnSchema(_ *walker.Context, name string, s *parser.Schema) error {
	return h.builder.AddSchema(name, s)
}

func (h *bindingHook) OnOperation(_ *walker.Context, method, path string, op *parser.Operation) error {
	return h.builder.AddOperation(method, path, op)
}

// collected returns the warnings gathered so far. Before Finish these are
// the builder's own.
func (h *bindingHook) collected() []*issues.Issue {
	if h.finished {
		return h.warnings
	}
	return h.builder.Warnings()
}

func (h *bindingHook) Finish(ctx *walker.FinishContext) error {
	doc := ctx.Document()

	graph, err := h.builder.Finish()
	h.finished = true
	h.warnings = append(h.warnings, h.builder.Warnings()...)
	if err != nil {
		return &oaserrors.GenerationError{Phase: "build", Cause: err}
	}

	ops, warnings, err := binder.Bind(doc, graph, binder.WithLogger(h.cfg.logger))
	if err != nil {
		return err
	}
	h.warnings = append(h.warnings, warnings...)

	if h.cfg.strict && len(h.warnings) > 0 {
		first := h.warnings[0]
		return &oaserrors.GenerationError{
			Phase:     "strict",
			Component: first.Component,
			Path:      first.Path,
			Cause:     fmt.Errorf("%d warning(s), first: %s", len(h.warnings), first.Message),
		}
	}

	meta := emit.Meta{Package: h.cfg.packageName, Runtime: h.cfg.runtime}
	if doc.Info != nil {
		meta.Title = doc.Info.Title
		meta.Description = doc.Info.Description
		meta.TermsOfService = doc.Info.TermsOfService
		meta.Version = doc.Info.Version
	}
	tree, err := emit.Emit(graph, ops, meta)
	if err != nil {
		return &oaserrors.GenerationError{Phase: "emit", Cause: err}
	}

	h.graph, h.ops, h.tree = graph, ops, tree
	return ctx.Emit(ArtifactName, tree)
}
