package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets a variable for the test while restoring it afterwards.
func clearEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "NEVERBALL_DATA")
	clearEnv(t, "NEVERBALL_VERBOSE")
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultDataDir, c.DataDir)
	assert.False(t, c.Verbose)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("NEVERBALL_DATA", "/opt/neverball/data")
	t.Setenv("NEVERBALL_VERBOSE", "true")
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/opt/neverball/data", c.DataDir)
	assert.True(t, c.Verbose)
}
