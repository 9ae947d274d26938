// Package generator turns an OpenAPI 3 document into typed Go bindings.
//
// # Quick Start
//
//	doc, err := parser.ParseFile("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := generator.Generate(doc,
//		generator.WithPackageName("petstore"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, w := range result.Warnings {
//		log.Println(w)
//	}
//	if err := result.WriteFiles("./petstore"); err != nil {
//		log.Fatal(err)
//	}
//
// # Pipeline
//
// Generation is a single walk of the document (package walker). The
// built-in binding hook collects every declared component and inline
// operation body into a highway component graph, then binds the operations
// (package binder) and emits one emission tree (package emit). Generate
// renders that tree to Go source with package render.
//
// GenerateWithHooks runs additional walker hooks after the binding hook.
// Each hook may emit its own tree at Finish; the binding hook's tree is
// registered as "api". Its warnings are returned alongside the artifacts.
//
// # Generated Files
//
// One file per non-empty module:
//   - parameters.go, request_bodies.go, responses.go, schemas.go: component types
//   - paths.go: per operation a response union and, when needed, a query struct
//   - api.go: the service type with one Bind method per operation
//
// The generated code imports package swaggrt, which serves the bound
// handlers on a net/http ServeMux.
package generator
