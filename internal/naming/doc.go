// Package naming converts OpenAPI wire names to Go identifiers.
//
// Names are split into words on separators and camel humps, then joined in
// PascalCase with the common Go initialisms upper-cased ("user_id" becomes
// "UserID"). Every conversion returns a valid exported identifier: inputs
// starting with a digit get a kind prefix, inputs starting with a letter
// that has no upper case get UncasedPrefix, and inputs without any letter
// or digit become Placeholder.
//
// OperationName derives the method fragment of an operation from its
// operationId, or from its method and path when the id is absent.
package naming
