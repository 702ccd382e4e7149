package oasvalid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVersion verifies that Version() reports a non-empty semantic version.
func TestVersion(t *testing.T) {
	result := Version()

	assert.NotEmpty(t, result, "Version() should not return empty string")

	// Should contain at least one digit (part of semver)
	hasDigit := false
	for _, ch := range result {
		if ch >= '0' && ch <= '9' {
			hasDigit = true
			break
		}
	}
	assert.True(t, hasDigit, "Version() should contain at least one digit, got: %s", result)
}

// TestUserAgent verifies that UserAgent() carries the version and is safe to
// use as an HTTP header value.
func TestUserAgent(t *testing.T) {
	result := UserAgent()

	assert.Equal(t, "oasvalid/"+Version(), result,
		"UserAgent() should be 'oasvalid/%s', got: %s", Version(), result)

	assert.NotContains(t, result, " ", "UserAgent() should not contain spaces")
	assert.NotContains(t, result, "\n", "UserAgent() should not contain newlines")
	assert.True(t, strings.HasPrefix(result, "oasvalid/"),
		"UserAgent() should start with 'oasvalid/', got: %s", result)
}
