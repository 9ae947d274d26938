// Package emit lays out a component graph and bound operations as a tree
// of declarations.
//
// The tree holds structured nodes only: modules, type declarations, bind
// methods, struct tag attributes and documentation lines. Turning it into
// source text is the job of the render package, which builds a Go syntax
// tree from it, so every rendered file parses.
//
// A Tree has six modules, always in this order:
//
//	parameters      components of #/components/parameters
//	request_bodies  components of #/components/requestBodies and inline request bodies
//	responses       components of #/components/responses and inline responses
//	schemas         components of #/components/schemas
//	paths           per path, a response union and a query struct per operation
//	api             the service type with one bind method per operation
package emit
