package walker

import (
	"context"
	"fmt"

	"github.com/swagg-dev/swagg/emit"
	"github.com/swagg-dev/swagg/internal/issues"
	"github.com/swagg-dev/swagg/parser"
	"github.com/swagg-dev/swagg/resolver"
)

// Context is the read-only view a hook receives. A new Context is built
// for every callback; hooks keep their own state.
type Context struct {
	doc      *parser.Document
	logger   parser.Logger
	ctx      context.Context
	path     string
	pathItem *parser.PathItem
}

// Document returns the document being walked. Hooks must not modify it.
func (c *Context) Document() *parser.Document {
	return c.doc
}

// Path returns the JSON path of the current item, e.g.
// "components.schemas.Pet" or "paths./pets.get". It is empty in the
// lifecycle callbacks.
func (c *Context) Path() string {
	return c.path
}

// PathItem returns the path item of the current operation, or nil outside
// OnOperation.
func (c *Context) PathItem() *parser.PathItem {
	return c.pathItem
}

// Logger returns the logger of the run.
func (c *Context) Logger() parser.Logger {
	return c.logger
}

// Context returns the context.Context of the run.
// Returns context.Background() if no context was set.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Resolve resolves a component reference of the given kind.
func (c *Context) Resolve(kind resolver.Kind, ref string) (any, error) {
	return resolver.Resolve(c.doc, kind, ref)
}

// ResolveSchema resolves a schema reference.
func (c *Context) ResolveSchema(ref string) (*parser.Schema, error) {
	return resolver.Schema(c.doc, ref)
}

// ResolveParameter resolves a parameter reference.
func (c *Context) ResolveParameter(ref string) (*parser.Parameter, error) {
	return resolver.Parameter(c.doc, ref)
}

// ResolveResponse resolves a response reference.
func (c *Context) ResolveResponse(ref string) (*parser.Response, error) {
	return resolver.Response(c.doc, ref)
}

// ResolveRequestBody resolves a request body reference.
func (c *Context) ResolveRequestBody(ref string) (*parser.RequestBody, error) {
	return resolver.RequestBody(c.doc, ref)
}

func (c *Context) at(path string) *Context {
	c2 := *c
	c2.path = path
	return &c2
}

// FinishContext is passed to Finish. Hooks register their output
// artifacts with Emit.
type FinishContext struct {
	Context
	artifacts map[string]*emit.Tree
	owners    map[string]string
	hook      string
	skipped   []*issues.Issue
}

// Skipped returns a warning for every part of the document the walk did
// not visit, such as path items given as a $ref.
func (c *FinishContext) Skipped() []*issues.Issue {
	return c.skipped
}

// Emit registers tree as the artifact called name. Names are unique across
// all hooks of a run.
func (c *FinishContext) Emit(name string, tree *emit.Tree) error {
	if name == "" {
		return fmt.Errorf("walker: artifact name is empty")
	}
	if tree == nil {
		return fmt.Errorf("walker: artifact %q is nil", name)
	}
	if owner, ok := c.owners[name]; ok {
		return fmt.Errorf("walker: artifact %q already emitted by hook %s", name, owner)
	}
	c.artifacts[name] = tree
	c.owners[name] = c.hook
	c.logger.Debug("artifact emitted", "artifact", name, "hook", c.hook)
	return nil
}
