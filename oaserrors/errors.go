// Package oaserrors provides structured error types for swagg.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), so callers can tell a bad reference from a naming conflict or
// a malformed operation without matching on message text.
//
// # Error Categories
//
//   - ParseError: YAML/JSON decoding failures and unsupported documents
//   - ReferenceError: $ref resolution failures (wrong namespace, missing
//     target, cycles)
//   - BuildError: component graph failures (name collisions, unnamed
//     parameter schemas)
//   - DuplicateStatusError: two responses of one operation share a label
//   - GenerationError: the top-level error returned by the generator, with
//     phase, component, path and operation context
//   - ResourceLimitError: input size or nesting limits
//   - ConfigError: invalid options
//
// # Usage with errors.As
//
//	result, err := generator.Generate(doc)
//	if err != nil {
//	    var refErr *oaserrors.ReferenceError
//	    if errors.As(err, &refErr) && refErr.Kind == oaserrors.RefCycleDetected {
//	        // report the cycle
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a $ref chain that never reaches a
	// concrete item.
	ErrCircularReference = errors.New("circular reference")

	// ErrBuild indicates the component graph could not be built.
	ErrBuild = errors.New("build error")

	// ErrNameCollision indicates two components were given the same name.
	ErrNameCollision = errors.New("name collision")

	// ErrDuplicateStatus indicates an operation declares a status twice.
	ErrDuplicateStatus = errors.New("duplicate status")

	// ErrGeneration indicates a generation run failed.
	ErrGeneration = errors.New("generation error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse an OpenAPI document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// RefErrorKind classifies a ReferenceError.
type RefErrorKind int

const (
	// RefNotFound means the reference names a component that does not exist.
	RefNotFound RefErrorKind = iota
	// RefWrongNamespace means the reference does not point into the
	// namespace expected for the item kind (including external references).
	RefWrongNamespace
	// RefCycleDetected means following the reference chain exceeded the
	// depth bound.
	RefCycleDetected
)

// String returns the kind name.
func (k RefErrorKind) String() string {
	switch k {
	case RefNotFound:
		return "not found"
	case RefWrongNamespace:
		return "wrong namespace"
	case RefCycleDetected:
		return "cycle detected"
	default:
		return "unknown"
	}
}

// ReferenceError represents a failure to resolve a $ref.
type ReferenceError struct {
	// Kind classifies the failure
	Kind RefErrorKind
	// Ref is the reference string that failed to resolve
	Ref string
	// ItemKind is the component kind being resolved, e.g. "schemas"
	ItemKind string
	// Name is the component name the reference points at, when known
	Name string
	// Depth is the number of hops followed before the failure
	Depth int
	// Message provides additional context about the failure
	Message string
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	switch e.Kind {
	case RefCycleDetected:
		msg = "circular reference"
	case RefWrongNamespace:
		msg = "reference outside " + e.namespace()
	case RefNotFound:
		if e.Name != "" {
			msg = fmt.Sprintf("%s %q not found", e.itemKind(), e.Name)
		}
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Kind == RefCycleDetected && e.Depth > 0 {
		msg += fmt.Sprintf(" (depth %d)", e.Depth)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *ReferenceError) itemKind() string {
	if e.ItemKind == "" {
		return "component"
	}
	return e.ItemKind
}

func (e *ReferenceError) namespace() string {
	if e.ItemKind == "" {
		return "#/components/"
	}
	return "#/components/" + e.ItemKind + "/"
}

// Unwrap returns nil as ReferenceError has no underlying cause.
func (e *ReferenceError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference for cycles.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrCircularReference && e.Kind == RefCycleDetected
}

// BuildErrorKind classifies a BuildError.
type BuildErrorKind int

const (
	// BuildNameCollision means a component name is already taken.
	BuildNameCollision BuildErrorKind = iota
	// BuildUnnamedParameterSchema means a query parameter has an inline
	// schema instead of a reference to a parameters component.
	BuildUnnamedParameterSchema
)

// String returns the kind name.
func (k BuildErrorKind) String() string {
	switch k {
	case BuildNameCollision:
		return "name collision"
	case BuildUnnamedParameterSchema:
		return "unnamed parameter schema"
	default:
		return "unknown"
	}
}

// BuildError represents a fatal failure while building the component graph
// or binding operations.
type BuildError struct {
	// Kind classifies the failure
	Kind BuildErrorKind
	// Proposed is the name that could not be registered (NameCollision)
	Proposed string
	// Existing describes the holder of the name (NameCollision)
	Existing string
	// Operation is the operation the failure belongs to, if any
	Operation string
	// Parameter is the parameter name (UnnamedParameterSchema)
	Parameter string
	// Path is the JSON path of the item that failed
	Path string
}

// Error returns a human-readable error message.
func (e *BuildError) Error() string {
	var msg string
	switch e.Kind {
	case BuildNameCollision:
		msg = fmt.Sprintf("name collision: %q is already used by %s", e.Proposed, e.Existing)
	case BuildUnnamedParameterSchema:
		msg = fmt.Sprintf("query parameter %q must reference a component in #/components/parameters/", e.Parameter)
		if e.Operation != "" {
			msg += " (operation " + e.Operation + ")"
		}
	default:
		msg = "build error"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

// Unwrap returns nil as BuildError has no underlying cause.
func (e *BuildError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
// Matches ErrBuild, and also ErrNameCollision for collisions.
func (e *BuildError) Is(target error) bool {
	if target == ErrBuild {
		return true
	}
	return target == ErrNameCollision && e.Kind == BuildNameCollision
}

// DuplicateStatusError reports an operation whose responses cannot be told
// apart: the same status code without distinct variant names, or two
// variants with the same label.
type DuplicateStatusError struct {
	// Operation is the operation name
	Operation string
	// Status is the repeated status code
	Status string
	// Label is the colliding variant label
	Label string
}

// Error returns a human-readable error message.
func (e *DuplicateStatusError) Error() string {
	msg := fmt.Sprintf("duplicate status %s in operation %s", e.Status, e.Operation)
	if e.Label != "" {
		msg += fmt.Sprintf(" (variant %s)", e.Label)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *DuplicateStatusError) Is(target error) bool {
	return target == ErrDuplicateStatus
}

// GenerationError is the error returned by the generator entry points.
// It wraps the failure of any phase with the context needed to find the
// offending part of the document.
type GenerationError struct {
	// Phase is the pipeline phase that failed, e.g. "build", "bind", "emit"
	Phase string
	// Component is the component name involved, if any
	Component string
	// Path is the path template or JSON path involved, if any
	Path string
	// Operation is the operation name involved, if any
	Operation string
	// Cause is the underlying error
	Cause error
}

// Error returns a human-readable error message.
func (e *GenerationError) Error() string {
	msg := "generation failed"
	if e.Phase != "" {
		msg += " during " + e.Phase
	}
	var ctx []string
	if e.Component != "" {
		ctx = append(ctx, "component "+e.Component)
	}
	if e.Operation != "" {
		ctx = append(ctx, "operation "+e.Operation)
	}
	if e.Path != "" {
		ctx = append(ctx, "at "+e.Path)
	}
	for i, c := range ctx {
		if i == 0 {
			msg += " ("
		} else {
			msg += ", "
		}
		msg += c
	}
	if len(ctx) > 0 {
		msg += ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "file size", "array depth"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
