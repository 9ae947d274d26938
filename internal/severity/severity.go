// Package severity provides the severity levels attached to issues reported
// while building and binding a document.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

import "fmt"

// Severity indicates the severity level of an issue.
type Severity int

const (
	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo Severity = iota

	// SeverityWarning indicates something the generator skipped or
	// approximated. The run still succeeds unless strict mode is on.
	SeverityWarning

	// SeverityError indicates a problem that makes the output unusable.
	SeverityError

	// SeverityCritical indicates a problem that stops processing.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity as its name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}
