package mcpserver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"no path", errors.New("schema is required"), "schema is required"},
		{
			"home path",
			errors.New("parsing /home/alice/specs/api.yaml: no such file"),
			"parsing <path>: no such file",
		},
		{
			"tmp path",
			errors.New("open /tmp/oasvalid-123/out.gen.go: permission denied"),
			"open <path>: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeError(tt.err))
		})
	}
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[string](0))
	s := makeSlice[int](3)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}
