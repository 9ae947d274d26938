// Package cliutil provides output helpers for the swagg command.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/swagg-dev/swagg/internal/issues"
	"github.com/swagg-dev/swagg/internal/severity"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteIssues writes each issue at or above floor on its own line and
// returns the number written.
func WriteIssues(w io.Writer, list []*issues.Issue, floor severity.Severity) int {
	n := 0
	for _, issue := range list {
		if issue == nil || issue.Severity < floor {
			continue
		}
		Writef(w, "%s\n", issue)
		n++
	}
	return n
}
