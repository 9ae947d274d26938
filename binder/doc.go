// Package binder turns the operations of a document into bound operations:
// every parameter, request body and response resolved to a component of a
// [highway.Graph].
//
// Only query parameters become part of the generated request. They must
// reference a component in #/components/parameters/; an inline schema is a
// fatal BuildError because there would be no stable name for its type.
// Path parameters are recorded by name, header and cookie parameters are
// ignored.
//
// Responses become the variants of a per-operation union. Each numeric
// status is labeled by its reason phrase or by an x-variant-name
// extension, and labels must be unique within the operation. "default" and
// range statuses such as "2XX" are skipped with a warning.
//
// Operations whose payload types were skipped by the graph builder are
// skipped too, with a warning, so the generated code never refers to a
// type that does not exist.
package binder
