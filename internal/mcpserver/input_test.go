package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swagg-dev/swagg/internal/testutil"
	"github.com/swagg-dev/swagg/parser"
)

func titledSpec(title string) string {
	return fmt.Sprintf("openapi: \"3.0.0\"\ninfo:\n  title: %q\n  version: \"1.0\"\npaths: {}\n", title)
}

func TestSpecInputResolve(t *testing.T) {
	documents.clear()

	fromFile, err := specInput{File: testutil.WriteSpec(t, "petstore.yaml", testutil.PetStoreYAML)}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", fromFile.Version)

	inline, err := specInput{Content: titledSpec("Inline")}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", inline.Version)
	assert.Equal(t, "Inline", inline.Document.Info.Title)
}

func TestSpecInputResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		input specInput
	}{
		{"none", specInput{}},
		{"both", specInput{File: "foo.yaml", Content: "bar"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.resolve()
			assert.ErrorIs(t, err, errSpecInput)
		})
	}

	_, err := specInput{File: "/nonexistent/path.yaml"}.resolve()
	assert.Error(t, err)
}

func TestResolveCachesFile(t *testing.T) {
	documents.clear()
	input := specInput{File: testutil.WriteSpec(t, "petstore.yaml", testutil.PetStoreYAML)}

	first, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, documents.len())

	second, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestResolveMissesModifiedFile(t *testing.T) {
	documents.clear()
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(titledSpec("V1")), 0o600))

	input := specInput{File: path}
	first, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "V1", first.Document.Info.Title)

	require.NoError(t, os.WriteFile(path, []byte(titledSpec("V2")), 0o600))
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, "V2", second.Document.Info.Title)
}

func TestResolveCachesContent(t *testing.T) {
	documents.clear()
	input := specInput{Content: titledSpec("Hash")}

	first, err := input.resolve()
	require.NoError(t, err)
	second, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestResolveInlineSizeLimit(t *testing.T) {
	documents.clear()
	saved := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	t.Cleanup(func() { cfg.MaxInlineSize = saved })

	_, err := specInput{Content: testutil.SessionYAML}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum 16 bytes")
}

func TestResolveExtraOptionsBypassCache(t *testing.T) {
	documents.clear()
	_, err := specInput{Content: testutil.SessionYAML}.resolve(parser.WithValidateStructure(true))
	require.NoError(t, err)
	assert.Equal(t, 0, documents.len())
}

func TestResolveCacheDisabled(t *testing.T) {
	documents.clear()
	saved := cfg.CacheEnabled
	cfg.CacheEnabled = false
	t.Cleanup(func() { cfg.CacheEnabled = saved })

	_, err := specInput{Content: testutil.SessionYAML}.resolve()
	require.NoError(t, err)
	assert.Equal(t, 0, documents.len())
}

func TestDocCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newDocCache(2)
	a, b, d := &parser.ParseResult{}, &parser.ParseResult{}, &parser.ParseResult{}

	c.put("a", a, time.Hour)
	c.put("b", b, time.Hour)
	assert.Same(t, a, c.get("a"))
	c.put("d", d, time.Hour)

	assert.Equal(t, 2, c.len())
	assert.Nil(t, c.get("b"))
	assert.Same(t, a, c.get("a"))
	assert.Same(t, d, c.get("d"))

	c.resize(1)
	assert.Equal(t, 1, c.len())
	assert.Same(t, d, c.get("d"))
}

func TestDocCacheExpiry(t *testing.T) {
	c := newDocCache(10)
	c.put("stale", &parser.ParseResult{}, -time.Second)
	c.put("fresh", &parser.ParseResult{}, time.Hour)

	assert.Nil(t, c.get("stale"))
	assert.Equal(t, 1, c.len())

	c.put("later", &parser.ParseResult{}, time.Minute)
	c.sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 1, c.len())
	assert.NotNil(t, c.get("fresh"))
}

func TestCacheKey(t *testing.T) {
	path := testutil.WriteSpec(t, "spec.yaml", testutil.SessionYAML)

	assert.Contains(t, specInput{File: path}.cacheKey(), "file:"+path+":")
	assert.Empty(t, specInput{File: "/nonexistent/spec.yaml"}.cacheKey())
	assert.Equal(t,
		specInput{Content: "x"}.cacheKey(),
		specInput{Content: "x"}.cacheKey())
	assert.NotEqual(t,
		specInput{Content: "x"}.cacheKey(),
		specInput{Content: "y"}.cacheKey())
}
