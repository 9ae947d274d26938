package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swagg-dev/swagg/internal/severity"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name        string
		issue       Issue
		contains    []string
		notContains []string
	}{
		{
			name: "warning with component",
			issue: Issue{
				Path:     "components.schemas.Shape",
				Message:  "oneOf is not supported",
				Severity: severity.SeverityWarning,
			},
			contains:    []string{"⚠", "components.schemas.Shape", "oneOf is not supported"},
			notContains: []string{"Detail:"},
		},
		{
			name: "error with detail",
			issue: Issue{
				Path:     "paths./pets.get",
				Message:  "bad",
				Severity: severity.SeverityError,
				Detail:   "additionalProperties",
			},
			contains: []string{"✗", "Detail: additionalProperties"},
		},
		{
			name: "info with operation id",
			issue: Issue{
				Path:      "paths./pets.get.responses.default",
				Message:   "default response skipped",
				Severity:  severity.SeverityInfo,
				Operation: &OperationContext{Method: "get", Path: "/pets", OperationID: "listPets"},
			},
			contains: []string{"ℹ", "(operationId: listPets)"},
		},
		{
			name: "operation without id",
			issue: Issue{
				Path:      "paths./pets.post",
				Severity:  severity.SeverityWarning,
				Operation: &OperationContext{Method: "post", Path: "/pets"},
			},
			contains: []string{"(POST /pets)"},
		},
		{
			name:     "unknown severity",
			issue:    Issue{Path: "x", Severity: severity.Severity(42)},
			contains: []string{"?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.issue.String()
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	w := Warning("components.schemas.A", "A", "skipped")
	assert.Equal(t, severity.SeverityWarning, w.Severity)
	assert.Equal(t, "A", w.Component)

	i := Info("paths./a", "", "note")
	assert.Equal(t, severity.SeverityInfo, i.Severity)

	list := []*Issue{w, i, {Severity: severity.SeverityCritical}}
	assert.Equal(t, 2, CountAtLeast(list, severity.SeverityWarning))
	assert.Equal(t, 3, CountAtLeast(list, severity.SeverityInfo))
}

func TestSkippedPathItem(t *testing.T) {
	tests := []struct {
		template string
		ref      string
		path     string
	}{
		{"/pets", "other.yaml#/paths/~1pets", "paths./pets"},
		{"/", "#/x-shared", "paths./"},
	}
	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			issue := SkippedPathItem(tt.template, tt.ref)
			assert.Equal(t, severity.SeverityWarning, issue.Severity)
			assert.Equal(t, tt.path, issue.Path)
			assert.Equal(t, tt.ref, issue.Detail)
			assert.Empty(t, issue.Component)
			assert.Contains(t, issue.Message, "not followed")
		})
	}
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "components.schemas.Pet", JoinPath("components", "schemas", "Pet"))
	assert.Equal(t, "paths./pets.get", JoinPath("paths", "", "/pets", "get"))
	assert.Equal(t, "", JoinPath())
}
