// Package swagg generates typed Go HTTP bindings from OpenAPI 3 documents.
//
// The generated code gives every operation of a document a response union
// with one member per declared status, a query struct when the operation
// has query parameters and a Bind method on a service type. Handlers bound
// through those methods are served by package swaggrt on a net/http
// ServeMux.
//
// # Packages
//
//   - parser: decode OpenAPI 3 documents into an ordered object model
//   - resolver: resolve local component references
//   - highway: build the component graph of generated types
//   - binder: bind operations to graph types
//   - walker: visit a document with a pipeline of hooks
//   - emit: produce the emission tree
//   - render: print an emission tree as Go source
//   - generator: run the whole pipeline
//   - swaggrt: the runtime imported by generated code
//
// # Quick Start
//
//	doc, err := parser.ParseFile("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := generator.Generate(doc, generator.WithPackageName("petstore"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./petstore"); err != nil {
//		log.Fatal(err)
//	}
//
// The swagg command wraps the same pipeline:
//
//	swagg generate -o ./petstore -p petstore openapi.yaml
package swagg
