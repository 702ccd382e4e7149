package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	t.Setenv("OASVALID_TEST_BOOL", "true")
	assert.True(t, envBool("OASVALID_TEST_BOOL", false))

	t.Setenv("OASVALID_TEST_BOOL", "not-a-bool")
	assert.True(t, envBool("OASVALID_TEST_BOOL", true))

	assert.False(t, envBool("OASVALID_TEST_UNSET", false))
}

func TestEnvInt(t *testing.T) {
	t.Setenv("OASVALID_TEST_INT", "42")
	assert.Equal(t, 42, envInt("OASVALID_TEST_INT", 7))

	t.Setenv("OASVALID_TEST_INT", "-1")
	assert.Equal(t, 7, envInt("OASVALID_TEST_INT", 7))

	t.Setenv("OASVALID_TEST_INT", "nope")
	assert.Equal(t, 7, envInt("OASVALID_TEST_INT", 7))
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("OASVALID_TEST_DUR", "30s")
	assert.Equal(t, 30*time.Second, envDuration("OASVALID_TEST_DUR", time.Minute))

	t.Setenv("OASVALID_TEST_DUR", "-5s")
	assert.Equal(t, time.Minute, envDuration("OASVALID_TEST_DUR", time.Minute))
}
