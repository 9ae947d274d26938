package swagg

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setBuild overrides the ldflags variables for the duration of the test.
func setBuild(t *testing.T, v, c, bt string) {
	t.Helper()
	oldVersion, oldCommit, oldTime := version, commit, buildTime
	version, commit, buildTime = v, c, bt
	t.Cleanup(func() {
		version, commit, buildTime = oldVersion, oldCommit, oldTime
	})
}

func TestDevelopmentDefaults(t *testing.T) {
	assert.Equal(t, "dev", Version())
	assert.Equal(t, "unknown", Commit())
	assert.Equal(t, "unknown", BuildTime())
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestBuildInfo(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		commit    string
		buildTime string
		expected  string
	}{
		{
			name:      "development",
			version:   "dev",
			commit:    "unknown",
			buildTime: "unknown",
			expected:  "Version: dev\nCommit: unknown\nBuild Time: unknown\nGo Version: " + runtime.Version() + "\n",
		},
		{
			name:      "release",
			version:   "v0.3.1",
			commit:    "4f2c9ab",
			buildTime: "2026-10-01T12:00:00Z",
			expected:  "Version: v0.3.1\nCommit: 4f2c9ab\nBuild Time: 2026-10-01T12:00:00Z\nGo Version: " + runtime.Version() + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuild(t, tt.version, tt.commit, tt.buildTime)
			assert.Equal(t, tt.version, Version())
			assert.Equal(t, tt.commit, Commit())
			assert.Equal(t, tt.buildTime, BuildTime())
			assert.Equal(t, tt.expected, BuildInfo())
		})
	}
}
