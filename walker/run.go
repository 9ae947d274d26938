package walker

import (
	"context"
	"errors"
	"fmt"

	"github.com/swagg-dev/swagg/emit"
	"github.com/swagg-dev/swagg/internal/httputil"
	"github.com/swagg-dev/swagg/internal/issues"
	"github.com/swagg-dev/swagg/oaserrors"
	"github.com/swagg-dev/swagg/parser"
	"github.com/swagg-dev/swagg/resolver"
)

// Run walks doc and calls every hook at each step, in registration order:
//
//  1. PreComponents
//  2. OnSecurityScheme, OnResponse, OnParameter, OnRequestBody, OnHeader
//     and OnSchema for each component of that kind, in document order
//  3. PostComponents
//  4. PrePaths
//  5. OnOperation for each path in document order and each defined method
//     in the order GET, PUT, POST, DELETE, OPTIONS, HEAD, PATCH, TRACE
//  6. PostPaths
//  7. Finish
//
// Components declared as references are resolved before they are passed
// on. Path items declared as references are not followed; they are
// reported by FinishContext.Skipped. The first error, from a hook or a failed resolution, aborts the run;
// artifacts are only returned when every step succeeded.
func Run(doc *parser.Document, hooks []Hook, opts ...Option) (map[string]*emit.Tree, error) {
	if doc == nil {
		return nil, fmt.Errorf("walker: document is nil")
	}
	cfg := config{logger: parser.NopLogger{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &run{
		hooks: hooks,
		base:  &Context{doc: doc, logger: cfg.logger, ctx: cfg.ctx},
	}
	steps := []func() error{
		func() error { return r.each("", func(h Hook, c *Context) error { return h.PreComponents(c) }) },
		r.components,
		func() error { return r.each("", func(h Hook, c *Context) error { return h.PostComponents(c) }) },
		func() error { return r.each("", func(h Hook, c *Context) error { return h.PrePaths(c) }) },
		r.paths,
		func() error { return r.each("", func(h Hook, c *Context) error { return h.PostPaths(c) }) },
		r.finish,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			cfg.logger.Debug("walk aborted", "error", err)
			return nil, err
		}
	}
	return r.artifacts, nil
}

type run struct {
	hooks     []Hook
	base      *Context
	artifacts map[string]*emit.Tree
	skipped   []*issues.Issue
}

// each calls fn for every hook with a context positioned at path.
func (r *run) each(path string, fn func(Hook, *Context) error) error {
	if err := r.base.Context().Err(); err != nil {
		return err
	}
	c := r.base.at(path)
	for _, h := range r.hooks {
		if err := fn(h, c); err != nil {
			return hookError(h, path, err)
		}
	}
	return nil
}

func (r *run) components() error {
	comps := r.base.doc.Components
	if comps == nil {
		return nil
	}
	doc := r.base.doc

	for name, s := range comps.SecuritySchemes.All() {
		path := issues.JoinPath("components", "securitySchemes", name)
		s, err := resolver.SecuritySchemeOf(doc, s)
		if err != nil {
			return resolveError(name, path, err)
		}
		if err := r.each(path, func(h Hook, c *Context) error { return h.OnSecurityScheme(c, name, s) }); err != nil {
			return err
		}
	}
	for name, resp := range comps.Responses.All() {
		path := issues.JoinPath("components", "responses", name)
		resp, err := resolver.ResponseOf(doc, resp)
		if err != nil {
			return resolveError(name, path, err)
		}
		if err := r.each(path, func(h Hook, c *Context) error { return h.OnResponse(c, name, resp) }); err != nil {
			return err
		}
	}
	for name, p := range comps.Parameters.All() {
		path := issues.JoinPath("components", "parameters", name)
		p, err := resolver.ParameterOf(doc, p)
		if err != nil {
			return resolveError(name, path, err)
		}
		if err := r.each(path, func(h Hook, c *Context) error { return h.OnParameter(c, name, p) }); err != nil {
			return err
		}
	}
	for name, rb := range comps.RequestBodies.All() {
		path := issues.JoinPath("components", "requestBodies", name)
		rb, err := resolver.RequestBodyOf(doc, rb)
		if err != nil {
			return resolveError(name, path, err)
		}
		if err := r.each(path, func(h Hook, c *Context) error { return h.OnRequestBody(c, name, rb) }); err != nil {
			return err
		}
	}
	for name, hdr := range comps.Headers.All() {
		path := issues.JoinPath("components", "headers", name)
		hdr, err := resolver.HeaderOf(doc, hdr)
		if err != nil {
			return resolveError(name, path, err)
		}
		if err := r.each(path, func(h Hook, c *Context) error { return h.OnHeader(c, name, hdr) }); err != nil {
			return err
		}
	}
	// Schemas are passed as declared: a schema that is a reference is an
	// alias and hooks see the reference itself.
	for name, s := range comps.Schemas.All() {
		path := issues.JoinPath("components", "schemas", name)
		if s != nil && s.Ref != "" {
			if _, err := resolver.Schema(doc, s.Ref); err != nil {
				return resolveError(name, path, err)
			}
		}
		if err := r.each(path, func(h Hook, c *Context) error { return h.OnSchema(c, name, s) }); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) paths() error {
	for tmpl, item := range r.base.doc.Paths.All() {
		if item == nil {
			continue
		}
		if item.Ref != "" {
			r.base.logger.Warn("path item reference skipped", "path", tmpl, "ref", item.Ref)
			r.skipped = append(r.skipped, issues.SkippedPathItem(tmpl, item.Ref))
			continue
		}
		for _, method := range httputil.Methods {
			op := item.Operation(method)
			if op == nil {
				continue
			}
			path := issues.JoinPath("paths", tmpl, method)
			err := r.each(path, func(h Hook, c *Context) error {
				c.pathItem = item
				return h.OnOperation(c, method, tmpl, op)
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *run) finish() error {
	if err := r.base.Context().Err(); err != nil {
		return err
	}
	fc := &FinishContext{
		Context:   *r.base,
		artifacts: make(map[string]*emit.Tree),
		owners:    make(map[string]string),
		skipped:   r.skipped,
	}
	for _, h := range r.hooks {
		fc.hook = hookName(h)
		if err := h.Finish(fc); err != nil {
			return hookError(h, "", err)
		}
	}
	r.artifacts = fc.artifacts
	return nil
}

func hookName(h Hook) string {
	if n, ok := h.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", h)
}

// hookError adds the hook and location to err unless it already carries
// generation context.
func hookError(h Hook, path string, err error) error {
	var genErr *oaserrors.GenerationError
	if errors.As(err, &genErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &oaserrors.GenerationError{
		Phase: "hook " + hookName(h),
		Path:  path,
		Cause: err,
	}
}

func resolveError(name, path string, err error) error {
	return &oaserrors.GenerationError{
		Phase:     "resolve",
		Component: name,
		Path:      path,
		Cause:     err,
	}
}
