package walker

import "github.com/swagg-dev/swagg/parser"

// Hook observes a document traversal. Every callback returns an error; a
// non-nil error aborts the run and no artifacts are returned.
//
// Embed NopHook to implement only the callbacks you need.
type Hook interface {
	PreComponents(ctx *Context) error
	OnSecurityScheme(ctx *Context, name string, scheme *parser.SecurityScheme) error
	OnResponse(ctx *Context, name string, resp *parser.Response) error
	OnParameter(ctx *Context, name string, param *parser.Parameter) error
	OnRequestBody(ctx *Context, name string, body *parser.RequestBody) error
	OnHeader(ctx *Context, name string, header *parser.Header) error
	OnSchema(ctx *Context, name string, schema *parser.Schema) error
	PostComponents(ctx *Context) error
	PrePaths(ctx *Context) error
	OnOperation(ctx *Context, method, path string, op *parser.Operation) error
	PostPaths(ctx *Context) error
	Finish(ctx *FinishContext) error
}

// Named is implemented by hooks that want a readable name in errors and
// logs. Other hooks are named by their type.
type Named interface {
	Name() string
}

// NopHook implements every callback as a no-op.
type NopHook struct{}

func (NopHook) PreComponents(*Context) error                                    { return nil }
func (NopHook) OnSecurityScheme(*Context, string, *parser.SecurityScheme) error { return nil }
func (NopHook) OnResponse(*Context, string, *parser.Response) error             { return nil }
func (NopHook) OnParameter(*Context, string, *parser.Parameter) error           { return nil }
func (NopHook) OnRequestBody(*Context, string, *parser.RequestBody) error       { return nil }
func (NopHook) OnHeader(*Context, string, *parser.Header) error                 { return nil }
func (NopHook) OnSchema(*Context, string, *parser.Schema) error                 { return nil }
func (NopHook) PostComponents(*Context) error                                   { return nil }
func (NopHook) PrePaths(*Context) error                                         { return nil }
func (NopHook) OnOperation(*Context, string, string, *parser.Operation) error   { return nil }
func (NopHook) PostPaths(*Context) error                                        { return nil }
func (NopHook) Finish(*FinishContext) error                                     { return nil }

var _ Hook = NopHook{}

// Funcs adapts plain functions to a Hook. Nil functions are no-ops.
//
//	hook := &walker.Funcs{
//	    HookName: "counter",
//	    OnSchemaFn: func(ctx *walker.Context, name string, s *parser.Schema) error {
//	        count++
//	        return nil
//	    },
//	}
type Funcs struct {
	HookName string

	PreComponentsFn    func(ctx *Context) error
	OnSecuritySchemeFn func(ctx *Context, name string, scheme *parser.SecurityScheme) error
	OnResponseFn       func(ctx *Context, name string, resp *parser.Response) error
	OnParameterFn      func(ctx *Context, name string, param *parser.Parameter) error
	OnRequestBodyFn    func(ctx *Context, name string, body *parser.RequestBody) error
	OnHeaderFn         func(ctx *Context, name string, header *parser.Header) error
	OnSchemaFn         func(ctx *Context, name string, schema *parser.Schema) error
	PostComponentsFn   func(ctx *Context) error
	PrePathsFn         func(ctx *Context) error
	OnOperationFn      func(ctx *Context, method, path string, op *parser.Operation) error
	PostPathsFn        func(ctx *Context) error
	FinishFn           func(ctx *FinishContext) error
}

var _ Hook = (*Funcs)(nil)

// Name returns HookName, or "funcs" when it is empty.
func (f *Funcs) Name() string {
	if f.HookName == "" {
		return "funcs"
	}
	return f.HookName
}

func (f *Funcs) PreComponents(ctx *Context) error {
	if f.PreComponentsFn == nil {
		return nil
	}
	return f.PreComponentsFn(ctx)
}

func (f *Funcs) OnSecurityScheme(ctx *Context, name string, scheme *parser.SecurityScheme) error {
	if f.OnSecuritySchemeFn == nil {
		return nil
	}
	return f.OnSecuritySchemeFn(ctx, name, scheme)
}

func (f *Funcs) OnResponse(ctx *Context, name string, resp *parser.Response) error {
	if f.OnResponseFn == nil {
		return nil
	}
	return f.OnResponseFn(ctx, name, resp)
}

func (f *Funcs) OnParameter(ctx *Context, name string, param *parser.Parameter) error {
	if f.OnParameterFn == nil {
		return nil
	}
	return f.OnParameterFn(ctx, name, param)
}

func (f *Funcs) OnRequestBody(ctx *Context, name string, body *parser.RequestBody) error {
	if f.OnRequestBodyFn == nil {
		return nil
	}
	return f.OnRequestBodyFn(ctx, name, body)
}

func (f *Funcs) OnHeader(ctx *Context, name string, header *parser.Header) error {
	if f.OnHeaderFn == nil {
		return nil
	}
	return f.OnHeaderFn(ctx, name, header)
}

func (f *Funcs) OnSchema(ctx *Context, name string, schema *parser.Schema) error {
	if f.OnSchemaFn == nil {
		return nil
	}
	return f.OnSchemaFn(ctx, name, schema)
}

func (f *Funcs) PostComponents(ctx *Context) error {
	if f.PostComponentsFn == nil {
		return nil
	}
	return f.PostComponentsFn(ctx)
}

func (f *Funcs) PrePaths(ctx *Context) error {
	if f.PrePathsFn == nil {
		return nil
	}
	return f.PrePathsFn(ctx)
}

func (f *Funcs) OnOperation(ctx *Context, method, path string, op *parser.Operation) error {
	if f.OnOperationFn == nil {
		return nil
	}
	return f.OnOperationFn(ctx, method, path, op)
}

func (f *Funcs) PostPaths(ctx *Context) error {
	if f.PostPathsFn == nil {
		return nil
	}
	return f.PostPathsFn(ctx)
}

func (f *Funcs) Finish(ctx *FinishContext) error {
	if f.FinishFn == nil {
		return nil
	}
	return f.FinishFn(ctx)
}
