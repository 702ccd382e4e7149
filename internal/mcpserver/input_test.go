package mcpserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecInputResolve_ExactlyOne(t *testing.T) {
	tests := []struct {
		name  string
		input specInput
	}{
		{"none set", specInput{}},
		{"file and content", specInput{File: "a.yaml", Content: "openapi: 3.0.0"}},
		{"file and url", specInput{File: "a.yaml", URL: "https://example.com/a.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.resolve()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exactly one of file, url, or content")
		})
	}
}

func TestSpecInputResolve_InlineSizeLimit(t *testing.T) {
	orig := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	defer func() { cfg.MaxInlineSize = orig }()

	_, err := specInput{Content: minimalSpecWithSchemaAndOp}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestSpecInputResolve_ContentCached(t *testing.T) {
	specCache.reset()

	first, err := specInput{Content: minimalSpecWithSchemaAndOp}.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, specCache.size())

	second, err := specInput{Content: minimalSpecWithSchemaAndOp}.resolve()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestSpecInputResolve_FileCacheInvalidatesOnChange(t *testing.T) {
	specCache.reset()
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalSpecWithSchemaAndOp), 0o644))

	key1 := makeCacheKey(specInput{File: path})
	require.NotEmpty(t, key1)

	// A different mtime yields a different key.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))
	key2 := makeCacheKey(specInput{File: path})
	assert.NotEqual(t, key1, key2)
}

func TestMakeCacheKey_MissingFile(t *testing.T) {
	assert.Empty(t, makeCacheKey(specInput{File: "does-not-exist.yaml"}))
}

func TestSpecCache_Expiry(t *testing.T) {
	specCache.reset()

	parsed, err := specInput{Content: minimalSpecWithSchemaAndOp}.resolve()
	require.NoError(t, err)

	specCache.putWithTTL("short", parsed, time.Nanosecond)
	time.Sleep(time.Millisecond)
	assert.Nil(t, specCache.get("short"))
}

func TestSpecCache_EvictsOldest(t *testing.T) {
	specCache.reset()
	origMax := specCache.maxSize
	specCache.maxSize = 2
	defer func() { specCache.maxSize = origMax }()

	parsed, err := specInput{Content: minimalSpecWithSchemaAndOp}.resolve()
	require.NoError(t, err)
	specCache.reset()

	specCache.putWithTTL("a", parsed, time.Minute)
	specCache.putWithTTL("b", parsed, time.Minute)
	specCache.putWithTTL("c", parsed, time.Minute)

	assert.Equal(t, 2, specCache.size())
	assert.Nil(t, specCache.get("a"))
	assert.NotNil(t, specCache.get("c"))
}
