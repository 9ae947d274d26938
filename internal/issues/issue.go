// Package issues provides the issue type used for non-fatal findings of
// the component builder and operation binder.
package issues

import (
	"fmt"
	"strings"

	"github.com/swagg-dev/swagg/internal/severity"
)

// Issue represents a single problem found while generating.
type Issue struct {
	// Path is the JSON path to the problematic item (e.g., "components.schemas.Pet")
	Path string `json:"path"`
	// Message is a human-readable description of the issue
	Message string `json:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity"`
	// Component is the generated component name the issue belongs to, if any
	Component string `json:"component,omitempty"`
	// Detail carries the offending keyword or value (optional)
	Detail string `json:"detail,omitempty"`
	// Operation identifies the operation the issue belongs to (optional)
	Operation *OperationContext `json:"operation,omitempty"`
}

// OperationContext identifies an operation for issues found under paths.
type OperationContext struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operationId,omitempty"`
}

// String returns "(operationId: x)" or "(GET /path)".
func (c OperationContext) String() string {
	if c.OperationID != "" {
		return fmt.Sprintf("(operationId: %s)", c.OperationID)
	}
	return fmt.Sprintf("(%s %s)", strings.ToUpper(c.Method), c.Path)
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	where := i.Path
	if i.Operation != nil {
		where += " " + i.Operation.String()
	}
	result := fmt.Sprintf("%s %s: %s", symbol, where, i.Message)
	if i.Detail != "" {
		result += fmt.Sprintf("\n    Detail: %s", i.Detail)
	}
	return result
}

// Warning returns a warning issue.
func Warning(path, component, message string) *Issue {
	return &Issue{Path: path, Component: component, Message: message, Severity: severity.SeverityWarning}
}

// SkippedPathItem returns the warning for a path item given as a $ref,
// which is not followed. Detail holds the reference.
func SkippedPathItem(template, ref string) *Issue {
	issue := Warning(JoinPath("paths", template), "",
		fmt.Sprintf("path item reference %s is not followed, path skipped", ref))
	issue.Detail = ref
	return issue
}

// Info returns an informational issue.
func Info(path, component, message string) *Issue {
	return &Issue{Path: path, Component: component, Message: message, Severity: severity.SeverityInfo}
}

// CountAtLeast returns the number of issues at or above floor.
func CountAtLeast(list []*Issue, floor severity.Severity) int {
	n := 0
	for _, i := range list {
		if i.Severity >= floor {
			n++
		}
	}
	return n
}

// JoinPath builds a dotted JSON path from segments, skipping empty ones.
func JoinPath(segments ...string) string {
	var sb strings.Builder
	for _, s := range segments {
		if s == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s)
	}
	return sb.String()
}
