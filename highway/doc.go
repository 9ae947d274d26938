// Package highway converts the reusable components and inline operation
// bodies of a document into a graph of named components.
//
// Every declared parameter, request body, response and schema becomes
// exactly one top-level component. Nested anonymous objects and enums are
// promoted to components of their own under synthesized names:
//
//	field f of component P          -> P + Pascal(f)
//	anonymous items of field f in P -> P + Pascal(f) + "Item"
//	inline request body of op O     -> O + "Body"
//	inline response body of op O    -> O + Label
//
// All names share one namespace. A synthesized name that is already taken
// is a NameCollision error, never a silent rename.
//
// Shapes the generator does not model (composition keywords, free-form
// objects, maps, binary strings, non-string enums) produce a warning and
// the component is skipped. Components referring to skipped components are
// skipped too.
//
// # Example
//
//	graph, warnings, err := highway.Build(doc)
//	if err != nil {
//		return err
//	}
//	for _, c := range graph.Components() {
//		fmt.Println(c.Summary())
//	}
package highway
