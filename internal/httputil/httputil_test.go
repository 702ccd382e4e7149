package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"200", true},
		{"404", true},
		{"599", true},
		{"default", true},
		{"2XX", true},
		{"5XX", true},
		{"x-custom", true},
		{"0XX", false},
		{"6XX", false},
		{"99", false},
		{"600", false},
		{"20a", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateStatusCode(tt.code))
		})
	}
}
