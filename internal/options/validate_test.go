package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExactlyOne(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantErr string
	}{
		{name: "none set", sources: []bool{false, false}, wantErr: "must specify an input"},
		{name: "one set", sources: []bool{false, true, false}},
		{name: "two set", sources: []bool{true, true}, wantErr: "must specify exactly one input, got 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExactlyOne("input", tt.sources...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
