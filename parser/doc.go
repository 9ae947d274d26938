// Package parser loads OpenAPI 3 documents into an order-preserving model.
//
// The model keeps the order in which paths, components, properties and
// responses appear in the source, because generated code follows document
// order. Repeated response status codes are kept as separate entries so the
// generator can report them instead of losing one silently.
//
// # Quick Start
//
//	doc, err := parser.ParseFile("openapi.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for path, item := range doc.Paths.All() {
//	    fmt.Println(path, item.Get != nil)
//	}
//
// Use [ParseWithOptions] to read from an io.Reader, attach a [Logger] or run
// structural validation with [WithValidateStructure].
package parser
