// Package walker drives hooks over a document in a fixed order.
//
// A hook is any [Hook] implementation; embed [NopHook] or use [Funcs] to
// implement only some callbacks. Hooks are independent observers: each
// receives a read-only [Context] and keeps its own state. They share
// nothing but the artifact namespace of [FinishContext.Emit].
//
// # Order
//
// Components come before paths. Within components the kinds are visited
// as security schemes, responses, parameters, request bodies, headers,
// schemas, each in document order. Within paths, operations are visited in
// document order by path and in the order GET, PUT, POST, DELETE, OPTIONS,
// HEAD, PATCH, TRACE by method. For every item all hooks run before the
// next item, in registration order.
//
// # Failure
//
// The first error aborts the run. Run then returns no artifacts at all.
//
//	artifacts, err := walker.Run(doc, []walker.Hook{myHook})
//	if err != nil {
//		return err
//	}
//	tree := artifacts["api"]
package walker
