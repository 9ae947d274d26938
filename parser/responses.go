package parser

import (
	"fmt"
	"strings"

	"github.com/swagg-dev/swagg/internal/httputil"
	"go.yaml.in/yaml/v4"
)

// ResponseEntry is one status code entry of an operation's responses.
type ResponseEntry struct {
	Status   string
	Response *Response
}

// Responses holds the responses of an operation in declaration order.
//
// Unlike OrderedMap it keeps repeated status codes: two entries for "200"
// are legal here and are told apart later by their x-variant-name.
type Responses struct {
	entries []ResponseEntry
	Extra   map[string]any
}

// NewResponses returns Responses holding the given entries in order.
func NewResponses(entries ...ResponseEntry) *Responses {
	r := &Responses{}
	for _, e := range entries {
		r.Add(e.Status, e.Response)
	}
	return r
}

// Add appends a response for status.
func (r *Responses) Add(status string, resp *Response) {
	r.entries = append(r.entries, ResponseEntry{Status: status, Response: resp})
}

// Entries returns a copy of the entries in declaration order.
func (r *Responses) Entries() []ResponseEntry {
	if r == nil {
		return nil
	}
	out := make([]ResponseEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Responses) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Get returns the first response declared for status.
func (r *Responses) Get(status string) *Response {
	if r == nil {
		return nil
	}
	for _, e := range r.entries {
		if e.Status == status {
			return e.Response
		}
	}
	return nil
}

// UnmarshalYAML decodes a responses mapping. Keys must be status codes,
// wildcard codes, "default" or extensions.
func (r *Responses) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	r.entries = nil
	r.Extra = nil
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: responses must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		if !httputil.ValidateStatusCode(key) {
			return fmt.Errorf("line %d: invalid status code '%s' in responses: must be a valid HTTP status code (e.g., \"200\", \"404\"), wildcard pattern (e.g., \"2XX\"), or extension field (e.g., \"x-custom\")", node.Content[i].Line, key)
		}
		if strings.HasPrefix(key, "x-") {
			var ext any
			if err := value.Decode(&ext); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if r.Extra == nil {
				r.Extra = make(map[string]any)
			}
			r.Extra[key] = ext
			continue
		}
		resp := &Response{}
		if err := value.Decode(resp); err != nil {
			return fmt.Errorf("failed to unmarshal response for status code %s: %w", key, err)
		}
		r.Add(key, resp)
	}
	return nil
}
